package main

import (
	"context"
	"testing"

	"github.com/Garsondee/tiny-voxel-engine/internal/config"
	"github.com/Garsondee/tiny-voxel-engine/internal/game"
	"github.com/Garsondee/tiny-voxel-engine/internal/raster"
)

func TestCensus_CountsEveryPixel(t *testing.T) {
	s := game.NewSession(game.WithCanvasSize(40, 30), game.WithCellSize(10), game.WithPlayer(20, 15, 2))
	if err := s.DrawNow(); err != nil {
		t.Fatal(err)
	}
	pc := census(s.Screen.Frame, s.World.Palette)
	total := pc.clear + pc.grid + pc.player + pc.line + pc.other
	if total != 40*30 {
		t.Fatalf("census covers %d pixels, want %d", total, 40*30)
	}
	if pc.player != 13 {
		t.Fatalf("radius-2 disc should cover 13 pixels, got %d", pc.player)
	}
	if pc.line != 0 || pc.other != 0 {
		t.Fatalf("unexpected line/other pixels: %+v", pc)
	}
}

func TestCensus_NilFrame(t *testing.T) {
	if pc := census(nil, game.DefaultPalette); pc != (pixelCensus{}) {
		t.Fatalf("nil frame census = %+v", pc)
	}
}

func TestRunPattern_DiagonalTravel(t *testing.T) {
	cfg := config.Default()
	rs, err := runPattern(context.Background(), cfg, "diagonal", 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := rs.start.Add(10*cfg.Speed, 10*cfg.Speed)
	if rs.final != want {
		t.Fatalf("final = %v, want %v", rs.final, want)
	}
	if rs.redraws != 10 || rs.presents != 10 {
		t.Fatalf("redraws=%d presents=%d, want 10 each", rs.redraws, rs.presents)
	}
}

func TestRunPattern_CancelStopsEarly(t *testing.T) {
	rs, err := runPattern(context.Background(), config.Default(), "cancel", 20, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !rs.exited || rs.ticks != 11 {
		t.Fatalf("exited=%v ticks=%d, want exit on tick 11", rs.exited, rs.ticks)
	}
	if rs.redraws != 10 {
		t.Fatalf("expected no redraw on the exit tick, got %d redraws", rs.redraws)
	}
}

func TestSquareScript_PointerAlwaysPresent(t *testing.T) {
	cfg := config.Default()
	sc := squareScript(40, cfg)
	for tick := 0; tick < 40; tick++ {
		in := sc(tick)
		p, ok := in.Pointer.Get()
		if !ok || p != (raster.Vec{X: float64(tick % cfg.Width), Y: 0}) {
			t.Fatalf("tick %d: pointer %v ok=%v", tick, p, ok)
		}
		held := 0
		for _, h := range in.Held {
			if h {
				held++
			}
		}
		if held != 1 {
			t.Fatalf("tick %d: %d directions held, want 1", tick, held)
		}
	}
}
