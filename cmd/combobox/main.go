package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jask/combobox/internal/combobox"
	"github.com/jask/combobox/internal/config"
	"github.com/jask/combobox/internal/database"
	"github.com/jask/combobox/internal/database/repository"
	"github.com/jask/combobox/internal/source"
	"github.com/jask/combobox/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("combobox: %v", err)
	}
}

func newRootCmd() *cobra.Command {
	v := config.New()

	cmd := &cobra.Command{
		Use:           "combobox",
		Short:         "Pick a value from a filtered, keyboard-navigable list",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if p, _ := cmd.Flags().GetString("config"); p != "" {
				v.SetConfigFile(p)
			}
			cfg, err := config.LoadFrom(v)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if n, _ := cmd.Flags().GetInt("history"); n > 0 {
				return printHistory(cmd.Context(), cfg, n, cmd.OutOrStdout())
			}
			return run(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.String("config", "", "config file (default "+config.Path()+")")
	flags.Int("history", 0, "print the last N selections of the collection and exit")
	flags.String("label", "", "label shown next to the input")
	flags.Bool("auto-select", false, "mark the first suggestion active automatically")
	flags.String("autocomplete", "", `input autocomplete mode: "list" or "both" (inline)`)
	flags.String("source", "", "candidate source: static, yaml, json or sqlite")
	flags.StringSlice("items", nil, "candidates for the static source")
	flags.String("file", "", "candidate file for the yaml and json sources")
	flags.String("json-path", "", "gjson path projecting records to display text")
	flags.String("collection", "", "sqlite collection name")
	flags.Int("typo-distance", 0, "also suggest candidates within this many edits (0 disables)")
	flags.String("db", "", "sqlite database path")
	flags.String("log-file", "", "write logs to this file")
	flags.String("log-level", "", "log level: debug, info, warn or error")

	for key, flag := range map[string]string{
		"combobox.label":             "label",
		"combobox.auto_select_first": "auto-select",
		"combobox.autocomplete":      "autocomplete",
		"source.kind":                "source",
		"source.items":               "items",
		"source.file":                "file",
		"source.json_path":           "json-path",
		"source.collection":          "collection",
		"source.typo_distance":       "typo-distance",
		"database.path":              "db",
		"log.file":                   "log-file",
		"log.level":                  "log-level",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			log.Fatalf("bind flag %s: %v", flag, err)
		}
	}
	return cmd
}

func run(ctx context.Context, cfg config.Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	cands, err := loadCandidates(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cands.close()
	logger.Info("candidates loaded", "source", cfg.Source.Kind, "count", len(cands.items))

	model, err := tui.New(tui.Options{
		Label:           cfg.Combobox.Label,
		AutoSelectFirst: cfg.Combobox.AutoSelectFirst,
		Autocomplete:    cfg.Combobox.Autocomplete,
		Source:          cands.source(cfg.Source.TypoDistance),
		Logger:          logger,
		OnChange: func(selected string) {
			logger.Info("selection changed", "value", selected)
			if cands.history == nil {
				return
			}
			err := cands.history.Record(ctx, repository.Selection{
				ID:         uuid.NewString(),
				Combobox:   cfg.Source.Collection,
				Text:       selected,
				SelectedAt: database.Now(),
			})
			if err != nil {
				logger.Warn("record selection", "error", err)
			}
		},
	})
	if err != nil {
		return err
	}
	defer model.Close()

	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	if sel := model.Selection(); sel != "" {
		fmt.Fprintln(out, sel)
	}
	return nil
}

// candidates is the resolved candidate set. search is set when the store
// answers queries itself; history only for the sqlite source.
type candidates struct {
	items   []string
	search  combobox.Source
	history *repository.SelectionRepo
	close   func()
}

func (c candidates) source(typoDistance int) combobox.Source {
	switch {
	case typoDistance > 0:
		return source.Typo{Items: c.items, MaxDistance: typoDistance}
	case c.search != nil:
		return c.search
	}
	return source.Static(c.items)
}

func loadCandidates(ctx context.Context, cfg config.Config, logger *slog.Logger) (candidates, error) {
	c := candidates{close: func() {}}
	switch cfg.Source.Kind {
	case config.SourceStatic:
		c.items = cfg.Source.Items
		return c, nil
	case config.SourceYAML:
		f, err := os.Open(cfg.Source.File)
		if err != nil {
			return c, fmt.Errorf("open items: %w", err)
		}
		defer f.Close()
		c.items, err = source.FromYAML(f)
		return c, err
	case config.SourceJSON:
		data, err := os.ReadFile(cfg.Source.File)
		if err != nil {
			return c, fmt.Errorf("read items: %w", err)
		}
		c.items, err = source.FromJSON(data, cfg.Source.JSONPath)
		return c, err
	case config.SourceSQLite:
		return loadFromDB(ctx, cfg, logger)
	}
	return c, fmt.Errorf("unknown source %q", cfg.Source.Kind)
}

func loadFromDB(ctx context.Context, cfg config.Config, logger *slog.Logger) (candidates, error) {
	c := candidates{close: func() {}}
	db, err := openStore(cfg.Database.Path)
	if err != nil {
		return c, err
	}
	closeDB := func() { _ = db.Close() }
	if cfg.Source.Collection == database.DefaultCollection {
		if err := database.SeedDefaults(ctx, db); err != nil {
			closeDB()
			return c, fmt.Errorf("seed defaults: %w", err)
		}
	}
	items := repository.NewItemRepo(db)
	c.items, err = source.FromRepo(ctx, items, cfg.Source.Collection)
	if err != nil {
		closeDB()
		return c, err
	}
	c.search = source.RepoSearch(ctx, items, cfg.Source.Collection, logger)
	c.history = repository.NewSelectionRepo(db)
	c.close = closeDB
	return c, nil
}

// openStore creates the database directory, migrates and opens the store.
func openStore(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := database.RunMigrations(path); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return db, nil
}

// printHistory writes the newest n selections of the configured
// collection, newest first.
func printHistory(ctx context.Context, cfg config.Config, n int, out io.Writer) error {
	db, err := openStore(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	recent, err := repository.NewSelectionRepo(db).Recent(ctx, cfg.Source.Collection, n)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	for _, s := range recent {
		fmt.Fprintf(out, "%s\t%s\n", s.SelectedAt.Local().Format(time.DateTime), s.Text)
	}
	return nil
}

func newLogger(cfg config.LogConfig) (*slog.Logger, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	if cfg.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = f.Close() }, nil
}
