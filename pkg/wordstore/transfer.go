package wordstore

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/japaniel/wordlist/pkg/csvio"
	"github.com/japaniel/wordlist/pkg/events"
)

// Export writes every entry to w as CSV, alphabetically.
func (c *Collection) Export(ctx context.Context, w io.Writer) (int, error) {
	entries, err := c.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	if err := csvio.Export(w, entries); err != nil {
		c.logger.Error("export failed", slog.Any("error", err))
		return 0, err
	}
	c.logger.Info("entries exported", slog.Int("count", len(entries)))
	c.bus.Publish(events.Event{Kind: events.EntriesExported, Count: len(entries)})
	return len(entries), nil
}

// Import parses r and stores every row that decoded. Rows that failed are
// returned in the result and never reach the backend. The valid rows are
// stored all-or-nothing.
func (c *Collection) Import(ctx context.Context, r io.Reader, opts csvio.DecodeOptions) (*csvio.ImportResult, error) {
	if opts.Logger == nil {
		opts.Logger = c.logger
	}
	result, err := csvio.Import(r, opts)
	if err != nil {
		return result, fmt.Errorf("import: %w", err)
	}
	for _, re := range result.Errors {
		c.logger.Warn("import row skipped",
			slog.Int("line", re.Line),
			slog.String("german", re.German),
			slog.Any("error", re.Err))
	}
	if err := c.AddAll(ctx, result.Entries); err != nil {
		return result, err
	}
	return result, nil
}
