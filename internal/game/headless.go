package game

import (
	"context"
	"fmt"
	"hash/fnv"
	"image"
	"log/slog"
	"time"
)

// MemoryPresenter keeps a copy of the last presented frame. Fail, when set,
// is returned from every Present call.
type MemoryPresenter struct {
	Frame    *image.RGBA
	Presents int
	Surface  image.Point
	Fail     error
}

// NewMemoryPresenter returns an empty presenter.
func NewMemoryPresenter() *MemoryPresenter {
	return &MemoryPresenter{}
}

// Present copies canvas into Frame.
func (m *MemoryPresenter) Present(canvas *image.RGBA) error {
	if m.Fail != nil {
		return m.Fail
	}
	if m.Frame == nil || m.Frame.Rect != canvas.Rect {
		m.Frame = image.NewRGBA(canvas.Rect)
	}
	copy(m.Frame.Pix, canvas.Pix)
	m.Presents++
	return nil
}

// Resize records the new surface size.
func (m *MemoryPresenter) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("surface %dx%d: size must be positive", w, h)
	}
	m.Surface = image.Point{X: w, Y: h}
	return nil
}

// Checksum returns the FNV-1a hash of the last presented frame.
func (m *MemoryPresenter) Checksum() uint64 {
	h := fnv.New64a()
	if m.Frame != nil {
		h.Write(m.Frame.Pix)
	}
	return h.Sum64()
}

// HeadlessConfig controls RunHeadless.
type HeadlessConfig struct {
	Hz    int // ticks per second, default 60
	Ticks int // stop after this many ticks, 0 runs until exit or cancel
}

// RunHeadless drives s on a ticker without a window until the loop exits,
// the tick limit is reached, or ctx is done.
func RunHeadless(ctx context.Context, s *Session, script Script, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	log := Logger().With(slog.String("session", s.Loop.Session().String()))
	log.Info("headless run", slog.Int("hz", cfg.Hz), slog.Int("ticks", cfg.Ticks))

	tick := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			running, err := s.Step(script.At(tick))
			if err != nil {
				return err
			}
			tick++
			if !running {
				return nil
			}
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
