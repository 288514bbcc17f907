package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/japaniel/wordlist/pkg/vocab"
	"github.com/japaniel/wordlist/pkg/wordstore"
)

// DBExecutor is satisfied by both *sql.DB and *sql.Tx, so the store's
// helpers run the same context-aware queries inside or outside a transaction.
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// tagChunk bounds the number of placeholders in one IN clause.
const tagChunk = 500

// Store persists the collection in SQLite.
type Store struct {
	conn *sql.DB
}

var _ wordstore.Backend = (*Store)(nil)

// NewStore wraps an initialized connection.
func NewStore(conn *sql.DB) *Store {
	return &Store{conn: conn}
}

func (s *Store) Fetch(ctx context.Context, f wordstore.Filter, mode vocab.SortMode) ([]*vocab.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries e`
	var where []string
	var args []any
	if f.Type != "" {
		where = append(where, `e.type = ?`)
		args = append(args, f.Type.String())
	}
	if f.Tag != "" {
		where = append(where, `EXISTS (SELECT 1 FROM entry_tags t WHERE t.entry_id = e.id AND t.tag = ?)`)
		args = append(args, f.Tag.String())
	}
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY e.rowid`

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var out []*vocab.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := loadTags(ctx, s.conn, out); err != nil {
		return nil, err
	}
	vocab.Sort(out, mode)
	return out, nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*vocab.Entry, error) {
	return getEntry(ctx, s.conn, id)
}

func (s *Store) Insert(ctx context.Context, e *vocab.Entry) error {
	return s.InsertMany(ctx, []*vocab.Entry{e})
}

// InsertMany stores all entries in one transaction.
func (s *Store) InsertMany(ctx context.Context, es []*vocab.Entry) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, e := range es {
			if err := insertEntry(ctx, tx, e); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) Update(ctx context.Context, e *vocab.Entry) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE entries SET
			german = ?, english = ?, type = ?, gender = ?, plural = ?, is_regular = ?,
			is_separable = ?, present = ?, imperfect = ?, past_participle = ?,
			auxiliary = ?, comparative = ?, noun_case = ?, example_sentence = ?,
			notes = ?, image = ?, created_at = ?
			WHERE id = ?`, append(entryArgs(e)[1:], e.ID.String())...)
		if err != nil {
			return fmt.Errorf("update entry %s: %w", e.ID, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("entry %s: %w", e.ID, vocab.ErrNotFound)
		}
		return replaceTags(ctx, tx, e)
	})
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM entry_tags WHERE entry_id = ?`, id.String()); err != nil {
			return fmt.Errorf("delete tags of %s: %w", id, err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id.String())
		if err != nil {
			return fmt.Errorf("delete entry %s: %w", id, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("entry %s: %w", id, vocab.ErrNotFound)
		}
		return nil
	})
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

func (s *Store) ListTags(ctx context.Context) ([]*vocab.CatalogTag, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT id, name, icon, icon_is_emoji FROM tags ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()
	var out []*vocab.CatalogTag
	for rows.Next() {
		var id string
		t := &vocab.CatalogTag{}
		if err := rows.Scan(&id, &t.Name, &t.Icon, &t.IconIsEmoji); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		if t.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("tag id %q: %w", id, err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) CreateTag(ctx context.Context, t *vocab.CatalogTag) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO tags (id, name, icon, icon_is_emoji, created_at) VALUES (?, ?, ?, ?, ?)`,
		t.ID.String(), t.Name, t.Icon, t.IconIsEmoji, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("insert tag %q: %w", t.Name, err)
	}
	return nil
}

// DeleteTag removes the catalog row and unlinks the tag from entries.
func (s *Store) DeleteTag(ctx context.Context, id uuid.UUID) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		var name string
		err := tx.QueryRowContext(ctx, `SELECT name FROM tags WHERE id = ?`, id.String()).Scan(&name)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("tag %s: %w", id, vocab.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("lookup tag %s: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id.String()); err != nil {
			return fmt.Errorf("delete tag %s: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM entry_tags WHERE tag = ? COLLATE NOCASE`, strings.TrimSpace(name)); err != nil {
			return fmt.Errorf("unlink tag %q: %w", name, err)
		}
		return nil
	})
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // ignored if committed
	}()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func insertEntry(ctx context.Context, db DBExecutor, e *vocab.Entry) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO entries (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entryArgs(e)...)
	if err != nil {
		return fmt.Errorf("insert entry %q: %w", e.German, err)
	}
	return replaceTags(ctx, db, e)
}

func replaceTags(ctx context.Context, db DBExecutor, e *vocab.Entry) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM entry_tags WHERE entry_id = ?`, e.ID.String()); err != nil {
		return fmt.Errorf("clear tags of %s: %w", e.ID, err)
	}
	for i, t := range e.Tags {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO entry_tags (entry_id, tag, position) VALUES (?, ?, ?) ON CONFLICT DO NOTHING`,
			e.ID.String(), t.String(), i); err != nil {
			return fmt.Errorf("link tag %s to %s: %w", t, e.ID, err)
		}
	}
	return nil
}

func getEntry(ctx context.Context, db DBExecutor, id uuid.UUID) (*vocab.Entry, error) {
	row := db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = ?`, id.String())
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("entry %s: %w", id, vocab.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get entry %s: %w", id, err)
	}
	if err := loadTags(ctx, db, []*vocab.Entry{e}); err != nil {
		return nil, err
	}
	return e, nil
}

// loadTags fills Tags for the given entries in position order.
func loadTags(ctx context.Context, db DBExecutor, entries []*vocab.Entry) error {
	byID := make(map[string]*vocab.Entry, len(entries))
	for _, e := range entries {
		byID[e.ID.String()] = e
	}
	for start := 0; start < len(entries); start += tagChunk {
		end := min(start+tagChunk, len(entries))
		args := make([]any, 0, end-start)
		for _, e := range entries[start:end] {
			args = append(args, e.ID.String())
		}
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(args)), ",")
		rows, err := db.QueryContext(ctx,
			`SELECT entry_id, tag FROM entry_tags WHERE entry_id IN (`+placeholders+`) ORDER BY entry_id, position`,
			args...)
		if err != nil {
			return fmt.Errorf("query tags: %w", err)
		}
		for rows.Next() {
			var entryID, tag string
			if err := rows.Scan(&entryID, &tag); err != nil {
				rows.Close()
				return fmt.Errorf("scan tag: %w", err)
			}
			if e, ok := byID[entryID]; ok {
				e.Tags = append(e.Tags, vocab.VocabTag(tag))
			}
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
