// Command hexscope serves a board-game savegame for analysis: load,
// recompute, watch for changes, answer queries.
package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/mfriedel/hexscope/internal/api"
	"github.com/mfriedel/hexscope/internal/config"
	"github.com/mfriedel/hexscope/internal/engine"
	"github.com/mfriedel/hexscope/internal/persistence"
	"github.com/mfriedel/hexscope/internal/savegame"
	"github.com/mfriedel/hexscope/internal/watch"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	configPath := flag.String("config", "", "path to YAML config")
	savePath := flag.String("save", "", "path to save file (default: previous session's)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755)
	db, err := persistence.Open(cfg.Database.Path)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.Database.Path)

	// ── Save path: flag, else the previous session's ──────────────────
	path := *savePath
	if path == "" {
		path, err = db.GetMeta(persistence.MetaLastPath)
		if err != nil || path == "" {
			slog.Error("no save path given and no previous session recorded")
			os.Exit(1)
		}
		slog.Info("using previous session's save path", "path", path)
	}

	// ── Engine ────────────────────────────────────────────────────────
	eng, err := engine.New(engine.StoreKind(cfg.Board.Store), cfg.Board.HexSize)
	if err != nil {
		slog.Error("failed to create engine", "error", err)
		os.Exit(1)
	}

	load := func() {
		save, err := savegame.Load(path)
		if err != nil {
			slog.Error("load failed", "error", err, "path", path)
			return
		}
		summary, err := eng.Load(save)
		if err != nil {
			slog.Error("board rejected", "error", err, "path", path)
			return
		}
		session := persistence.Session{
			ID:       uuid.NewString(),
			Path:     path,
			LoadedAt: time.Now().UTC(),
			Tiles:    summary.Tiles,
			Missing:  summary.Missing,
			Groups:   summary.Groups,
			LoadMS:   summary.Elapsed.Milliseconds(),
		}
		if err := db.RecordSession(session); err != nil {
			slog.Error("session record failed", "error", err)
		}
	}
	load()

	// ── Watcher ───────────────────────────────────────────────────────
	if cfg.Watch.Enabled {
		watcher, err := watch.New(path, time.Duration(cfg.Watch.DebounceMS)*time.Millisecond, load)
		if err != nil {
			slog.Error("failed to start watcher", "error", err)
			os.Exit(1)
		}
		defer watcher.Close()
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	apiServer := &api.Server{
		Eng:  eng,
		DB:   db,
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	}
	apiServer.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received signal, shutting down", "signal", sig)
}
