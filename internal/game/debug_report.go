package game

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
)

// copyToClipboard is swapped out by tests.
var copyToClipboard = clipboard.WriteAll

// DebugReport renders the world state and the last n frame-log entries.
func (l *Loop) DebugReport(n int) string {
	if n <= 0 {
		n = 16
	}
	w := l.world
	var b strings.Builder
	fmt.Fprintf(&b, "--- tiny-voxel debug report ---\n")
	fmt.Fprintf(&b, "session=%s tick=%d redraws=%d state=%s\n", l.session, l.tick, l.redraws, l.state)
	fmt.Fprintf(&b, "canvas=%dx%d cell=%d speed=%.2f\n", l.canvas.Rect.Dx(), l.canvas.Rect.Dy(), w.CellSize, w.Speed)
	fmt.Fprintf(&b, "player=(%.2f,%.2f) r=%d cursor=%s\n", w.Player.Pos.X, w.Player.Pos.Y, w.Player.Radius, cursorString(w.Cursor))
	b.WriteString("\n")
	entries := l.log.Last(n)
	if len(entries) == 0 {
		b.WriteString("(no frame events recorded yet)\n")
	}
	for _, e := range entries {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// CopyDebugReport puts the debug report on the system clipboard. Failure
// is logged and otherwise ignored.
func (l *Loop) CopyDebugReport() bool {
	if err := copyToClipboard(l.DebugReport(0)); err != nil {
		Logger().Warn("copy debug report", slog.Any("err", err))
		return false
	}
	Logger().Info("debug report copied", slog.String("session", l.session.String()))
	return true
}
