package main

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/japaniel/wordlist/pkg/quiz"
)

func quizCommand(a *app) *cobra.Command {
	var reverse bool
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Practice with multiple-choice questions",
		Long: `Practice with multiple-choice questions.

Answer with the option number. Other inputs:
  n  next question
  r  restart and reset the score
  t  toggle direction (German to English / English to German)
  q  quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s := quiz.NewSession(a.coll, quiz.WithOptions(a.cfg.Quiz.Options), quiz.WithLogger(a.logger))
			if reverse {
				s.ToggleDirection()
			}
			if err := s.Start(ctx); err != nil {
				if errors.Is(err, quiz.ErrEmptyCollection) {
					fmt.Fprintln(a.out, "No words to quiz yet. Add some first.")
					return nil
				}
				return err
			}

			sc := bufio.NewScanner(a.in)
			a.printQuestion(s)
			for sc.Scan() {
				input := strings.ToLower(strings.TrimSpace(sc.Text()))
				switch input {
				case "":
					continue
				case "q":
					a.printQuizStats(s)
					return nil
				case "t":
					s.ToggleDirection()
					a.printQuestion(s)
					continue
				case "r":
					s.Restart()
					if err := s.Start(ctx); err != nil {
						return err
					}
					fmt.Fprintln(a.out, "Score reset.")
					a.printQuestion(s)
					continue
				case "n":
					if err := s.Next(ctx); err != nil {
						if errors.Is(err, quiz.ErrInvalidState) {
							fmt.Fprintln(a.out, "Answer the current question first.")
							continue
						}
						return err
					}
					a.printQuestion(s)
					continue
				}

				n, err := strconv.Atoi(input)
				q := s.Question()
				if err != nil || n < 1 || n > len(q.Options) {
					fmt.Fprintf(a.out, "Enter 1-%d, n, r, t or q.\n", len(q.Options))
					continue
				}
				correct, err := s.Choose(q.Options[n-1].ID)
				if errors.Is(err, quiz.ErrInvalidState) {
					fmt.Fprintln(a.out, "Already answered. Press n for the next question.")
					continue
				}
				if err != nil {
					return err
				}
				if correct {
					fmt.Fprintln(a.out, "Correct!")
				} else {
					fmt.Fprintf(a.out, "Wrong. %s = %s\n", s.Prompt(), s.OptionLabel(q.Target))
				}
			}
			a.printQuizStats(s)
			return sc.Err()
		},
	}
	cmd.Flags().BoolVar(&reverse, "reverse", false, "ask English words, answer in German")
	return cmd
}

func (a *app) printQuestion(s *quiz.Session) {
	q := s.Question()
	fmt.Fprintf(a.out, "\n%s\n", s.Prompt())
	for i, o := range q.Options {
		fmt.Fprintf(a.out, "  %d) %s\n", i+1, s.OptionLabel(o))
	}
}

func (a *app) printQuizStats(s *quiz.Session) {
	st := s.Stats()
	fmt.Fprintf(a.out, "Score: %d/%d (%.2f%%)\n", st.Score, st.Answered, st.Accuracy())
}
