package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/japaniel/wordlist/pkg/harvest"
	"github.com/japaniel/wordlist/pkg/vocab"
)

func harvestCommand(a *app) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "harvest URL",
		Short: "Fill missing example sentences from a web article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			h := harvest.New(harvest.Config{
				Workers:      a.cfg.Harvest.Workers,
				Timeout:      a.cfg.Harvest.Timeout,
				MaxBodyBytes: a.cfg.Harvest.MaxBodyBytes,
				UserAgent:    a.cfg.Harvest.UserAgent,
			}, a.logger)

			entries, err := a.coll.Snapshot(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Fetching %s...\n", args[0])
			article, suggestions, err := h.Harvest(ctx, args[0], entries)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Title: %s\n", article.Title)

			byID := make(map[uuid.UUID]*vocab.Entry, len(entries))
			for _, e := range entries {
				byID[e.ID] = e
			}
			for _, s := range suggestions {
				fmt.Fprintf(a.out, "%s: %s\n", s.German, s.Sentence)
				if dryRun {
					continue
				}
				e := byID[s.EntryID]
				e.ExampleSentence = s.Sentence
				if err := a.coll.Update(ctx, e); err != nil {
					return err
				}
			}
			verb := "Updated"
			if dryRun {
				verb = "Found"
			}
			fmt.Fprintf(a.out, "%s %d example sentences.\n", verb, len(suggestions))
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print suggestions without saving them")
	return cmd
}
