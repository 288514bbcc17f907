package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/japaniel/wordlist/pkg/vocab"
)

func tagsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Manage the tag catalog",
	}
	cmd.AddCommand(tagsListCommand(a), tagsAddCommand(a), tagsRemoveCommand(a))
	return cmd
}

func tagsListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog tags with the number of words carrying each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := a.coll.Tags(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			for _, t := range tags {
				entries, err := a.coll.TagEntries(cmd.Context(), t)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\n", t.Label(), len(entries), t.ID)
			}
			return tw.Flush()
		},
	}
}

func tagsAddCommand(a *app) *cobra.Command {
	var icon string
	var emoji bool
	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a catalog tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := vocab.NewCatalogTag(args[0], icon, emoji)
			if err := a.coll.CreateTag(cmd.Context(), t); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Added tag %s\n", t.Label())
			return nil
		},
	}
	cmd.Flags().StringVar(&icon, "icon", "", "symbol name or emoji")
	cmd.Flags().BoolVar(&emoji, "emoji", false, "treat --icon as a literal emoji")
	return cmd
}

func tagsRemoveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm NAME|ID",
		Short: "Remove a catalog tag; words keep existing but lose the tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.resolveTag(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := a.coll.DeleteTag(cmd.Context(), t.ID); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Removed tag %s\n", t.Name)
			return nil
		},
	}
}

func (a *app) resolveTag(ctx context.Context, ref string) (*vocab.CatalogTag, error) {
	tags, err := a.coll.Tags(ctx)
	if err != nil {
		return nil, err
	}
	id, idErr := uuid.Parse(ref)
	for _, t := range tags {
		if (idErr == nil && t.ID == id) || strings.EqualFold(t.Name, strings.TrimSpace(ref)) {
			return t, nil
		}
	}
	return nil, fmt.Errorf("tag %q: %w", ref, vocab.ErrNotFound)
}
