package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/japaniel/wordlist/pkg/csvio"
)

func importCommand(a *app) *cobra.Command {
	var lenient bool
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import words from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			opts := csvio.DecodeOptions{LenientTypes: a.cfg.CSV.LenientTypes || lenient}
			result, err := a.coll.Import(cmd.Context(), f, opts)
			if err != nil {
				return err
			}
			for _, re := range result.Errors {
				fmt.Fprintf(a.errOut, "skipped %v\n", re)
			}
			fmt.Fprintf(a.out, "Imported %d words, skipped %d rows.\n", len(result.Entries), len(result.Errors))
			if len(result.Entries) == 0 && len(result.Errors) > 0 {
				return fmt.Errorf("no rows imported from %s", args[0])
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&lenient, "lenient-types", false, "import rows with an unknown type as nouns")
	return cmd
}

func exportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [FILE]",
		Short: "Export all words as CSV (stdout by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_, err := a.coll.Export(cmd.Context(), a.out)
				return err
			}
			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			n, err := a.coll.Export(cmd.Context(), f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(a.errOut, "Exported %d words to %s\n", n, args[0])
			return nil
		},
	}
}
