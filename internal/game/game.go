package game

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/tiny-voxel-engine/internal/config"
	"github.com/Garsondee/tiny-voxel-engine/internal/raster"
)

// WindowTitle is shown in the title bar.
const WindowTitle = "Tiny Voxel Engine"

// dirKeys maps each direction to the keys that hold it.
var dirKeys = [dirCount][]ebiten.Key{
	DirUp:    {ebiten.KeyArrowUp, ebiten.KeyW},
	DirDown:  {ebiten.KeyArrowDown, ebiten.KeyS},
	DirLeft:  {ebiten.KeyArrowLeft, ebiten.KeyA},
	DirRight: {ebiten.KeyArrowRight, ebiten.KeyD},
}

const (
	cancelKey = ebiten.KeyEscape
	hudKey    = ebiten.KeyF1
	reportKey = ebiten.KeyF2
)

// ebitenPresenter uploads the canvas into a logical-size image. ebiten
// scales that image to whatever the window currently is.
type ebitenPresenter struct {
	img  *ebiten.Image
	size image.Point
}

var _ Presenter = (*ebitenPresenter)(nil)

func newEbitenPresenter(w, h int) *ebitenPresenter {
	return &ebitenPresenter{
		img:  ebiten.NewImage(w, h),
		size: image.Point{X: w, Y: h},
	}
}

func (p *ebitenPresenter) Present(c *image.RGBA) error {
	if c.Rect.Size() != p.size {
		return fmt.Errorf("canvas %v does not match surface image %v", c.Rect.Size(), p.size)
	}
	p.img.WritePixels(c.Pix)
	return nil
}

// Resize is a no-op: ebiten stretches the logical image to the window.
func (p *ebitenPresenter) Resize(w, h int) error {
	return nil
}

// Game adapts the frame loop to ebiten: Update is the input tick, Draw is
// the redraw event.
type Game struct {
	cfg     config.Config
	loop    *Loop
	present *ebitenPresenter
	hud     *hud
	showHUD bool

	surface image.Point // last outside size reported to Layout
	resized bool
	err     error       // presenter failure from Draw, surfaced by the next Update
}

// New builds a Game for cfg. cfg must already be validated.
func New(cfg config.Config) *Game {
	w := NewWorld(cfg.Width, cfg.Height, cfg.CellSize, cfg.Radius)
	w.Speed = cfg.Speed
	if cfg.ClearCursorOutside {
		w.Policy = CursorClearOutside
	}
	p := newEbitenPresenter(cfg.Width, cfg.Height)
	return &Game{
		cfg:     cfg,
		loop:    NewLoop(w, raster.NewCanvas(cfg.Width, cfg.Height), p),
		present: p,
		hud:     newHUD(),
	}
}

// Run opens the window and blocks until the loop exits.
func Run(cfg config.Config) error {
	ebiten.SetWindowTitle(WindowTitle)
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetWindowSizeLimits(cfg.Width, cfg.Height, -1, -1)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetScreenClearedEveryFrame(false)
	ebiten.SetTPS(cfg.TPS)

	g := New(cfg)
	Logger().Info("window open", "session", g.loop.Session().String(),
		"canvas", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height), "scale", cfg.Scale)
	return ebiten.RunGame(g)
}

func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	if err := g.loop.Dispatch(Event{Kind: EventInput, Input: g.pollInput()}); err != nil {
		return err
	}
	if g.loop.Exited() {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(hudKey) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(reportKey) {
		g.loop.CopyDebugReport()
	}
	return nil
}

// pollInput samples ebiten's input state into a snapshot.
func (g *Game) pollInput() InputSnapshot {
	var in InputSnapshot
	for d, keys := range dirKeys {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				in.Held[d] = true
				break
			}
		}
	}
	in.CancelPressed = inpututil.IsKeyJustPressed(cancelKey)
	in.CloseRequested = ebiten.IsWindowBeingClosed()

	mx, my := ebiten.CursorPosition()
	in.Pointer = pointerAt(mx, my, g.loop.Canvas().Rect)

	if g.resized {
		in.Resized = true
		in.Size = g.surface
		g.resized = false
	}
	return in
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.err == nil && g.loop.RedrawPending() {
		if err := g.loop.Dispatch(Event{Kind: EventRedraw}); err != nil {
			g.err = err
		}
	}
	// The screen is not cleared between frames. Copy, don't blend, so
	// transparent canvas cells replace the previous frame and the HUD.
	screen.DrawImage(g.present.img, &ebiten.DrawImageOptions{Blend: ebiten.BlendCopy})
	if g.showHUD {
		g.hud.Draw(screen, g.loop)
	}
}

// Layout keeps the logical resolution fixed; a changed outside size is only
// forwarded to the presenter as a resize on the next tick.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := image.Point{X: outsideWidth, Y: outsideHeight}
	if s != g.surface {
		g.surface = s
		g.resized = true
	}
	return g.cfg.Width, g.cfg.Height
}
