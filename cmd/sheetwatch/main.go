package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"sheetwatch/internal/cache"
	"sheetwatch/internal/config"
	"sheetwatch/internal/journal"
	"sheetwatch/internal/loader"
	"sheetwatch/internal/model"
	"sheetwatch/internal/scheduler"
)

func main() {
	configPath := flag.String("config", "./sheetwatch.yaml", "path to config file")
	sourcePath := flag.String("source", "", "spreadsheet path (overrides config)")
	once := flag.Bool("once", false, "run a single poll, print today's records and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	if *sourcePath != "" {
		cfg.SourcePath = *sourcePath
	}

	log := newLogger(cfg.LogLevel)

	for _, p := range []string{cfg.CachePath, cfg.JournalPath} {
		if dir := filepath.Dir(p); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				log.Error("create data directory", "path", dir, "error", err)
				os.Exit(1)
			}
		}
	}

	store, err := journal.NewSQLite(cfg.JournalPath)
	if err != nil {
		log.Error("open journal", "path", cfg.JournalPath, "error", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	ld := loader.New(cfg.SourcePath, cfg.TimeColumn, cfg.ContentColumns, cache.New(cfg.CachePath, log), log)
	sink := &journalEmitter{store: store, columns: cfg.ContentColumns, log: log}
	sched := scheduler.New(ld, sink, cfg.NameColumn(), log)

	if *once {
		res := sched.PollOnce()
		sink.record(res)
		if !res.Success {
			fmt.Fprintln(os.Stderr, res.Message)
			os.Exit(1)
		}
		fmt.Printf("%d records today\n", len(res.Snapshot))
		for _, r := range res.Snapshot {
			fmt.Println(formatRecord(r, cfg.ContentColumns))
		}
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("starting watcher", "source", cfg.SourcePath, "interval", cfg.Interval())
	sched.Start(cfg.Interval())

	<-ctx.Done()
	sched.Stop()
	log.Info("watcher stopped")
}

// journalEmitter is the headless consumer: each poll result is logged,
// newly appeared records are printed, and the outcome is appended to the
// poll journal.
type journalEmitter struct {
	store   journal.Store
	columns []string
	log     *slog.Logger
}

func (e *journalEmitter) Emit(res model.PollResult) {
	if res.Success {
		e.log.Info(res.Message, "records", len(res.Snapshot), "new", len(res.New))
	} else {
		e.log.Error("poll failed", "message", res.Message)
	}
	for _, r := range res.New {
		fmt.Println(formatRecord(r, e.columns))
	}
	e.record(res)
}

func (e *journalEmitter) record(res model.PollResult) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := e.store.Append(ctx, &journal.Entry{
		PolledAt:    time.Now(),
		Success:     res.Success,
		Message:     res.Message,
		RecordCount: len(res.Snapshot),
		NewCount:    len(res.New),
	})
	if err != nil {
		e.log.Warn("append journal", "error", err)
	}
}

func formatRecord(r model.Record, columns []string) string {
	var b strings.Builder
	b.WriteString(r.Timestamp.Format("2006-01-02 15:04:05"))
	b.WriteString(":")
	for _, col := range columns {
		v, ok := r.Fields[col]
		if !ok || v == nil {
			continue
		}
		fmt.Fprintf(&b, " %s: %v,", col, v)
	}
	return strings.TrimSuffix(b.String(), ",")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
