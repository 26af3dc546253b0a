package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/Garsondee/tiny-voxel-engine/internal/config"
	"github.com/Garsondee/tiny-voxel-engine/internal/game"
	"github.com/Garsondee/tiny-voxel-engine/internal/raster"
)

type runStats struct {
	pattern   string
	ticks     int
	exited    bool
	start     raster.Vec
	final     raster.Vec
	redraws   int
	presents  int
	checksum  uint64
	census    pixelCensus
	lastEvent string
}

// pixelCensus counts the presented pixels per draw layer.
type pixelCensus struct {
	clear, grid, player, line, other int
}

// patterns are the scripted input sequences the report can replay.
var patterns = map[string]func(ticks int, cfg config.Config) game.Script{
	"idle":     idleScript,
	"right":    rightScript,
	"diagonal": diagonalScript,
	"square":   squareScript,
	"cancel":   cancelScript,
}

func idleScript(int, config.Config) game.Script { return nil }

func rightScript(int, config.Config) game.Script { return game.Hold(game.DirRight) }

func diagonalScript(int, config.Config) game.Script {
	return game.Hold(game.DirDown, game.DirRight)
}

// cancelScript holds left and presses cancel halfway through the run.
func cancelScript(ticks int, _ config.Config) game.Script {
	return game.CancelAt(ticks/2, game.Hold(game.DirLeft))
}

func main() {
	cfg, err := config.FromEnv(".env")
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}

	var ticks, hz int
	var pattern string
	fs := flag.NewFlagSet("headless-report", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	fs.IntVar(&ticks, "ticks", 240, "ticks per run")
	fs.IntVar(&hz, "hz", 0, "tick rate; 0 steps as fast as possible")
	fs.StringVar(&pattern, "pattern", "all", "input pattern: "+strings.Join(patternNames(), ", ")+" or all")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("error:", err)
		os.Exit(2)
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		os.Exit(2)
	}
	game.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	names := patternNames()
	if pattern != "all" {
		if _, ok := patterns[pattern]; !ok {
			fmt.Printf("error: unsupported pattern %q (supported: %s)\n", pattern, strings.Join(names, ", "))
			os.Exit(2)
		}
		names = []string{pattern}
	}

	fmt.Printf("=== Headless Frame Report ===\n")
	fmt.Printf("canvas=%dx%d cell=%d radius=%d speed=%.2f ticks=%d hz=%d\n\n",
		cfg.Width, cfg.Height, cfg.CellSize, cfg.Radius, cfg.Speed, ticks, hz)

	for _, name := range names {
		rs, err := runPattern(context.Background(), cfg, name, ticks, hz)
		if err != nil {
			fmt.Printf("error: pattern %s: %v\n", name, err)
			os.Exit(1)
		}
		printRun(rs)
	}
}

func patternNames() []string {
	names := make([]string, 0, len(patterns))
	for n := range patterns {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// squareScript walks the player around a square while the pointer sweeps
// along the top edge of the canvas.
func squareScript(ticks int, cfg config.Config) game.Script {
	leg := ticks / 4
	if leg < 1 {
		leg = 1
	}
	order := []game.Direction{game.DirRight, game.DirDown, game.DirLeft, game.DirUp}
	return func(t int) game.InputSnapshot {
		var in game.InputSnapshot
		in.Held[order[(t/leg)%len(order)]] = true
		x := t % cfg.Width
		in.Pointer = game.SomeCursor(raster.Vec{X: float64(x), Y: 0})
		return in
	}
}

func runPattern(ctx context.Context, cfg config.Config, name string, ticks, hz int) (runStats, error) {
	s := game.NewSession(game.WithConfig(cfg))
	start := s.World.Player.Pos
	script := patterns[name](ticks, cfg)

	var err error
	if hz > 0 {
		err = game.RunHeadless(ctx, s, script, game.HeadlessConfig{Hz: hz, Ticks: ticks})
	} else {
		_, err = s.RunTicks(ticks, script)
	}
	if err != nil {
		return runStats{}, err
	}

	rs := runStats{
		pattern:  name,
		ticks:    s.Loop.Tick(),
		exited:   s.Loop.Exited(),
		start:    start,
		final:    s.World.Player.Pos,
		redraws:  s.Loop.Redraws(),
		presents: s.Screen.Presents,
		checksum: s.Screen.Checksum(),
		census:   census(s.Screen.Frame, s.World.Palette),
	}
	if last := s.Loop.Log().Last(1); len(last) == 1 {
		rs.lastEvent = last[0].String()
	}
	return rs, nil
}

func census(frame *image.RGBA, pal game.Palette) pixelCensus {
	var pc pixelCensus
	if frame == nil {
		return pc
	}
	b := frame.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			switch frame.RGBAAt(x, y) {
			case pal.Line:
				pc.line++
			case pal.Player:
				pc.player++
			case pal.Grid:
				pc.grid++
			case pal.Clear:
				pc.clear++
			default:
				pc.other++
			}
		}
	}
	return pc
}

func printRun(rs runStats) {
	fmt.Printf("--- Pattern %s ---\n", rs.pattern)
	fmt.Printf("ticks=%d exited=%v redraws=%d presents=%d\n", rs.ticks, rs.exited, rs.redraws, rs.presents)
	fmt.Printf("player: start=(%.1f,%.1f) final=(%.1f,%.1f) travelled=%.1f\n",
		rs.start.X, rs.start.Y, rs.final.X, rs.final.Y, rs.start.Dist(rs.final))
	fmt.Printf("pixels: clear=%d grid=%d player=%d line=%d other=%d\n",
		rs.census.clear, rs.census.grid, rs.census.player, rs.census.line, rs.census.other)
	fmt.Printf("frame_fnv64a=%016x\n", rs.checksum)
	if rs.lastEvent != "" {
		fmt.Printf("last_event: %s\n", rs.lastEvent)
	}
	fmt.Println()
}
