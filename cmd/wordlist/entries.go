package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/japaniel/wordlist/pkg/vocab"
	"github.com/japaniel/wordlist/pkg/wordstore"
)

// entryFlags are the optional entry fields shared by add and edit.
type entryFlags struct {
	german, english string
	typ             string
	gender, plural  string
	tags            []string
	notes, example  string
	image           string
	irregular       bool
	separable       bool
	present         string
	imperfect       string
	pastParticiple  string
	auxiliary       string
	comparative     string
	nounCase        string
}

func (f *entryFlags) register(cmd *cobra.Command, withHeadword bool) {
	fl := cmd.Flags()
	if withHeadword {
		fl.StringVar(&f.german, "german", "", "German headword")
		fl.StringVar(&f.english, "english", "", "English translation")
	}
	fl.StringVarP(&f.typ, "type", "t", "Noun", "grammatical type")
	fl.StringVarP(&f.gender, "gender", "g", "", "noun gender (Masculine, Feminine, Neuter, Plural)")
	fl.StringVar(&f.plural, "plural", "", "noun plural form")
	fl.StringSliceVar(&f.tags, "tag", nil, "topic tag (repeatable)")
	fl.StringVar(&f.notes, "notes", "", "free-form notes")
	fl.StringVar(&f.example, "example", "", "example sentence")
	fl.StringVar(&f.image, "image", "", "path to an image file")
	fl.BoolVar(&f.irregular, "irregular", false, "mark a verb or adjective irregular")
	fl.BoolVar(&f.separable, "separable", false, "mark a verb separable")
	fl.StringVar(&f.present, "present", "", "irregular verb present form")
	fl.StringVar(&f.imperfect, "imperfect", "", "irregular verb imperfect form")
	fl.StringVar(&f.pastParticiple, "past-participle", "", "irregular verb past participle")
	fl.StringVar(&f.auxiliary, "aux", "", "perfect auxiliary (haben or sein)")
	fl.StringVar(&f.comparative, "comparative", "", "irregular adjective comparative")
	fl.StringVar(&f.nounCase, "case", "", "case governed by a preposition")
}

// apply copies every flag the user set onto e.
func (f *entryFlags) apply(cmd *cobra.Command, e *vocab.Entry) error {
	changed := cmd.Flags().Changed
	var err error
	if changed("german") {
		e.German = f.german
	}
	if changed("english") {
		e.English = f.english
	}
	if changed("type") {
		if e.Type, err = vocab.ParseType(f.typ); err != nil {
			return err
		}
	}
	if changed("gender") {
		if f.gender == "" {
			e.Gender = nil
		} else if e.Gender = vocab.ParseGender(f.gender); e.Gender == nil {
			return fmt.Errorf("%w: gender %q", vocab.ErrUnknownValue, f.gender)
		}
	}
	if changed("plural") {
		e.Plural = f.plural
	}
	if changed("tag") {
		e.Tags = e.Tags[:0:0]
		for _, name := range f.tags {
			t, err := vocab.ParseTag(name)
			if err != nil {
				return err
			}
			e.Tags = append(e.Tags, t)
		}
	}
	if changed("notes") {
		e.Notes = f.notes
	}
	if changed("example") {
		e.ExampleSentence = f.example
	}
	if changed("image") {
		if f.image == "" {
			e.Image = nil
		} else if e.Image, err = os.ReadFile(f.image); err != nil {
			return fmt.Errorf("read image: %w", err)
		}
	}
	if changed("irregular") {
		e.IsRegular = !f.irregular
	}
	if changed("separable") {
		e.IsSeparable = f.separable
	}
	if changed("present") {
		e.Present = f.present
	}
	if changed("imperfect") {
		e.Imperfect = f.imperfect
	}
	if changed("past-participle") {
		e.PastParticiple = f.pastParticiple
	}
	if changed("aux") {
		if e.Auxiliary, err = vocab.ParseAuxiliary(f.auxiliary); err != nil {
			return err
		}
	}
	if changed("comparative") {
		e.Comparative = f.comparative
	}
	if changed("case") {
		if e.Case, err = vocab.ParseCase(f.nounCase); err != nil {
			return err
		}
	}
	return nil
}

func addCommand(a *app) *cobra.Command {
	var f entryFlags
	cmd := &cobra.Command{
		Use:   "add GERMAN ENGLISH",
		Short: "Add a word",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := vocab.ParseType(f.typ)
			if err != nil {
				return err
			}
			e := vocab.New(args[0], args[1], typ)
			if err := f.apply(cmd, e); err != nil {
				return err
			}
			if err := a.coll.Add(cmd.Context(), e); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Added %s (%s)\n", headword(e), e.ID)
			return nil
		},
	}
	f.register(cmd, false)
	return cmd
}

func editCommand(a *app) *cobra.Command {
	var f entryFlags
	cmd := &cobra.Command{
		Use:   "edit WORD|ID",
		Short: "Change fields of a word, including its type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := f.apply(cmd, e); err != nil {
				return err
			}
			if err := a.coll.Update(cmd.Context(), e); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Updated %s\n", headword(e))
			return nil
		},
	}
	f.register(cmd, true)
	return cmd
}

func removeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm WORD|ID",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a word",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := a.coll.Remove(cmd.Context(), e.ID); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Removed %s\n", headword(e))
			return nil
		},
	}
}

func showCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show WORD|ID",
		Short: "Print every field of a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printEntry(a.out, e)
			return nil
		},
	}
}

func listCommand(a *app) *cobra.Command {
	var search, typ, tag, sortBy string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List words, optionally filtered and searched",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := wordstore.Query{Search: search}
			var err error
			if typ != "" {
				if q.Filter.Type, err = vocab.ParseType(typ); err != nil {
					return err
				}
			}
			if tag != "" {
				if q.Filter.Tag, err = vocab.ParseTag(tag); err != nil {
					return err
				}
			}
			if q.Sort, err = vocab.ParseSortMode(sortBy); err != nil {
				return err
			}

			seq, err := a.coll.All(cmd.Context(), q)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			n := 0
			for e := range seq {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", headword(e), e.English, e.Type, joinTags(e.Tags))
				n++
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(a.out, "No words found.")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "free-text search")
	cmd.Flags().StringVarP(&typ, "type", "t", "", "only this grammatical type")
	cmd.Flags().StringVar(&tag, "tag", "", "only words with this topic tag")
	cmd.Flags().StringVar(&sortBy, "sort", "alpha", "sort order: alpha, newest, oldest")
	return cmd
}

func statsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count words by type and tag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.coll.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Total: %d\n", st.Total)
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			for _, t := range vocab.AllTypes() {
				if n := st.ByType[t]; n > 0 {
					fmt.Fprintf(tw, "  %s\t%d\n", t, n)
				}
			}
			for _, t := range vocab.AllTags() {
				if n := st.ByTag[t]; n > 0 {
					fmt.Fprintf(tw, "  %s %s\t%d\n", t.DefaultIcon(), t, n)
				}
			}
			return tw.Flush()
		},
	}
}

func seedCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Add the sample words to an empty list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.coll.Seed(cmd.Context())
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(a.out, "List is not empty; nothing seeded.")
				return nil
			}
			fmt.Fprintf(a.out, "Seeded %d words.\n", n)
			return nil
		},
	}
}

var errAmbiguous = errors.New("ambiguous word")

// resolve finds an entry by identifier or, failing that, by headword.
func (a *app) resolve(ctx context.Context, ref string) (*vocab.Entry, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return a.coll.Get(ctx, id)
	}
	entries, err := a.coll.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	var found []*vocab.Entry
	for _, e := range entries {
		if strings.EqualFold(e.German, strings.TrimSpace(ref)) {
			found = append(found, e)
		}
	}
	switch len(found) {
	case 0:
		return nil, fmt.Errorf("word %q: %w", ref, vocab.ErrNotFound)
	case 1:
		return found[0], nil
	}
	ids := make([]string, len(found))
	for i, e := range found {
		ids[i] = e.ID.String()
	}
	return nil, fmt.Errorf("%w %q, use one of: %s", errAmbiguous, ref, strings.Join(ids, ", "))
}

func headword(e *vocab.Entry) string {
	if art := e.Article(); art != "" {
		return art + " " + e.German
	}
	return e.German
}

func joinTags(tags []vocab.VocabTag) string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

func printEntry(w io.Writer, e *vocab.Entry) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	field := func(name, value string) {
		if value != "" {
			fmt.Fprintf(tw, "%s:\t%s\n", name, value)
		}
	}
	field("ID", e.ID.String())
	field("German", headword(e))
	field("English", e.English)
	field("Type", e.Type.String())
	switch e.Type {
	case vocab.Noun:
		if e.Gender != nil {
			field("Gender", e.Gender.String())
		}
		field("Plural", e.Plural)
	case vocab.Verb:
		field("Regular", fmt.Sprint(e.IsRegular))
		field("Separable", fmt.Sprint(e.IsSeparable))
		field("Auxiliary", e.Auxiliary.String())
		if !e.IsRegular {
			field("Present", e.Present)
			field("Imperfect", e.Imperfect)
			field("Past participle", e.PastParticiple)
		}
	case vocab.Adjective:
		field("Regular", fmt.Sprint(e.IsRegular))
		if !e.IsRegular {
			field("Comparative", e.Comparative)
		}
	case vocab.Preposition:
		field("Case", e.Case.String())
	}
	field("Tags", joinTags(e.Tags))
	field("Example", e.ExampleSentence)
	field("Notes", e.Notes)
	if len(e.Image) > 0 {
		field("Image", fmt.Sprintf("%d bytes", len(e.Image)))
	}
	field("Created", e.CreatedAt.Format("2006-01-02 15:04"))
	_ = tw.Flush()
}
