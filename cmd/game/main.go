package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/Garsondee/tiny-voxel-engine/internal/config"
	"github.com/Garsondee/tiny-voxel-engine/internal/game"
)

func main() {
	cfg, err := config.Load("game", os.Args[1:], ".env")
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}
	game.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	if err := game.Run(cfg); err != nil {
		log.Fatal(err)
	}
}
