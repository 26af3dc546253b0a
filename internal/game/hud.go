package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	hudLineHeight = 13 // basicfont 7x13
	hudCharWidth  = 7
	hudPad        = 3
)

// hud is the F1 status panel. It draws on the ebiten screen after the
// canvas has been copied, so the canvas itself never contains HUD pixels.
type hud struct {
	face *text.GoXFace
}

func newHUD() *hud {
	return &hud{face: text.NewGoXFace(basicfont.Face7x13)}
}

// hudLines returns the panel text for the current loop state.
func hudLines(l *Loop, tps float64) []string {
	w := l.World()
	return []string{
		fmt.Sprintf("T=%d  tps=%.0f", l.Tick(), tps),
		fmt.Sprintf("player (%.0f,%.0f) r%d", w.Player.Pos.X, w.Player.Pos.Y, w.Player.Radius),
		"cursor " + cursorString(w.Cursor),
		"F1 hud  F2 copy  Esc quit",
	}
}

// Draw renders the panel in the top-left corner.
func (h *hud) Draw(screen *ebiten.Image, l *Loop) {
	lines := hudLines(l, ebiten.ActualTPS())

	maxLen := 0
	for _, s := range lines {
		if len(s) > maxLen {
			maxLen = len(s)
		}
	}
	boxW := float32(maxLen*hudCharWidth + hudPad*2)
	boxH := float32(len(lines)*hudLineHeight + hudPad*2)
	vector.DrawFilledRect(screen, 2, 2, boxW, boxH, color.RGBA{R: 6, G: 10, B: 20, A: 200}, false)
	vector.StrokeRect(screen, 2, 2, boxW, boxH, 1, color.RGBA{R: 0x48, G: 0xb2, B: 0xe8, A: 180}, false)

	for i, s := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(2+hudPad), float64(2+hudPad+i*hudLineHeight))
		op.ColorScale.ScaleWithColor(color.White)
		text.Draw(screen, s, h.face, op)
	}
}
