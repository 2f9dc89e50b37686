// Command boardgen writes a synthetic savegame for demos and testing.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/mfriedel/hexscope/internal/savegame"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	tiles := flag.Int("tiles", 200, "number of tiles to place")
	seed := flag.Int64("seed", 0, "random seed (0 = random)")
	out := flag.String("out", "board.json", "output path")
	flag.Parse()

	save := savegame.Generate(savegame.GenConfig{Tiles: *tiles, Seed: *seed})
	if err := savegame.Write(*out, save); err != nil {
		slog.Error("write failed", "error", err)
		os.Exit(1)
	}
	slog.Info("savegame written", "path", *out, "tiles", len(save.Tiles))
}
