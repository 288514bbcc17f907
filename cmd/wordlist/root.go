package main

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/japaniel/wordlist/pkg/config"
	"github.com/japaniel/wordlist/pkg/db"
	"github.com/japaniel/wordlist/pkg/events"
	"github.com/japaniel/wordlist/pkg/logging"
	"github.com/japaniel/wordlist/pkg/wordstore"
)

// app carries what every command needs once the root pre-run has opened
// the collection.
type app struct {
	cfgPath string
	dbPath  string

	cfg    *config.Config
	logger *slog.Logger
	conn   *sql.DB
	coll   *wordstore.Collection

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{in: in, out: out, errOut: errOut}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "wordlist",
		Short:         "Manage and practice a German vocabulary list",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "path to YAML config file (default ./wordlist.yaml)")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "path to SQLite database (overrides config)")

	root.AddCommand(
		addCommand(a),
		editCommand(a),
		removeCommand(a),
		showCommand(a),
		listCommand(a),
		importCommand(a),
		exportCommand(a),
		quizCommand(a),
		tagsCommand(a),
		statsCommand(a),
		seedCommand(a),
		harvestCommand(a),
	)
	return root
}

// open loads config, sets up logging and opens the backend.
func (a *app) open(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if a.dbPath != "" {
		cfg.Database.Path = a.dbPath
		cfg.Database.InMemory = false
	}
	a.cfg = cfg
	a.logger = logging.NewWithWriter(cfg.Log, a.errOut)

	bus := events.NewBus(a.logger)
	var backend wordstore.Backend
	if cfg.Database.InMemory {
		backend = wordstore.NewMemoryBackend()
	} else {
		conn, err := db.Open(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		a.conn = conn
		backend = db.NewStore(conn)
		a.logger.Debug("database opened", slog.String("path", cfg.Database.Path))
	}
	a.coll = wordstore.New(backend, bus, a.logger)

	if _, err := a.coll.SeedTags(cmd.Context()); err != nil {
		return fmt.Errorf("seed tag catalog: %w", err)
	}
	return nil
}

func (a *app) close() error {
	if a.conn == nil {
		return nil
	}
	err := a.conn.Close()
	a.conn = nil
	return err
}
