package game

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"
	"time"
)

func TestLoop_FirstFrameRequested(t *testing.T) {
	s := NewSession()
	if !s.Loop.RedrawPending() {
		t.Fatal("a new loop should request its first frame")
	}
	if s.Loop.State() != StateIdle {
		t.Fatalf("state = %v, want idle", s.Loop.State())
	}
}

func TestLoop_InputRequestsRedraw(t *testing.T) {
	s := NewSession()
	if err := s.DrawNow(); err != nil {
		t.Fatal(err)
	}
	if s.Loop.RedrawPending() {
		t.Fatal("redraw should clear the pending flag")
	}
	if err := s.Loop.Dispatch(Event{Kind: EventInput}); err != nil {
		t.Fatal(err)
	}
	if !s.Loop.RedrawPending() {
		t.Fatal("an input tick should request a redraw")
	}
	if s.Loop.State() != StateIdle {
		t.Fatalf("state after input = %v, want idle", s.Loop.State())
	}
}

func TestLoop_CancelHaltsWithoutRedraw(t *testing.T) {
	s := NewSession(WithPlayer(50, 50, 3))
	if _, err := s.Step(InputSnapshot{}); err != nil {
		t.Fatal(err)
	}
	redraws := s.Loop.Redraws()
	presents := s.Screen.Presents

	in := InputSnapshot{CancelPressed: true}
	in.Held[DirRight] = true
	running, err := s.Step(in)
	if err != nil {
		t.Fatal(err)
	}
	if running {
		t.Fatal("cancel key should stop the loop")
	}
	if s.Loop.State() != StateExited {
		t.Fatalf("state = %v, want exited", s.Loop.State())
	}
	if s.Loop.RedrawPending() {
		t.Fatal("no redraw may be requested once exit is requested")
	}
	if s.Loop.Redraws() != redraws || s.Screen.Presents != presents {
		t.Fatal("a frame was drawn after exit")
	}
	if s.World.Player.Pos.X != 50 {
		t.Fatalf("movement applied on the exit tick: x=%v", s.World.Player.Pos.X)
	}
}

func TestLoop_CloseRequestedExits(t *testing.T) {
	s := NewSession()
	if running, _ := s.Step(InputSnapshot{CloseRequested: true}); running {
		t.Fatal("close request should stop the loop")
	}
	exits := s.Loop.Log().Filter(KindExit)
	if len(exits) != 1 || exits[0].Detail != "close requested" {
		t.Fatalf("expected one close exit entry, got %v", exits)
	}
}

func TestLoop_EventsAfterExitIgnored(t *testing.T) {
	s := NewSession()
	if err := s.Loop.Dispatch(Event{Kind: EventInput, Input: InputSnapshot{CancelPressed: true}}); err != nil {
		t.Fatal(err)
	}
	tick := s.Loop.Tick()
	var in InputSnapshot
	in.Held[DirUp] = true
	_ = s.Loop.Dispatch(Event{Kind: EventInput, Input: in})
	_ = s.Loop.Dispatch(Event{Kind: EventRedraw})
	if s.Loop.Tick() != tick || s.Loop.Redraws() != 0 {
		t.Fatalf("events after exit were handled: tick=%d redraws=%d", s.Loop.Tick(), s.Loop.Redraws())
	}
}

func TestLoop_ResizeOnlyTouchesPresenter(t *testing.T) {
	s := NewSession(WithCanvasSize(320, 240))
	in := InputSnapshot{Resized: true, Size: image.Point{X: 1280, Y: 960}}
	if _, err := s.Step(in); err != nil {
		t.Fatal(err)
	}
	if s.Screen.Surface != (image.Point{X: 1280, Y: 960}) {
		t.Fatalf("presenter surface = %v", s.Screen.Surface)
	}
	if got := s.Canvas.Rect.Size(); got != (image.Point{X: 320, Y: 240}) {
		t.Fatalf("canvas resized to %v, logical size must stay 320x240", got)
	}
	if len(s.Loop.Log().Filter(KindResize)) != 1 {
		t.Fatal("expected one resize log entry")
	}
}

func TestLoop_ResizeFailureIsReturned(t *testing.T) {
	s := NewSession()
	if _, err := s.Step(InputSnapshot{Resized: true}); err == nil {
		t.Fatal("zero surface size should fail the resize")
	}
}

func TestLoop_PresentFailureIsReturned(t *testing.T) {
	boom := errors.New("surface lost")
	s := NewSession()
	s.Screen.Fail = boom
	err := s.DrawNow()
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped presenter error, got %v", err)
	}
	if s.Loop.State() != StateIdle {
		t.Fatalf("state after failed present = %v", s.Loop.State())
	}
}

func TestSession_RunTicksMovesPlayer(t *testing.T) {
	s := NewSession(WithPlayer(10, 10, 2), WithSpeed(1.5))
	n, err := s.RunTicks(20, Hold(DirRight))
	if err != nil || n != 20 {
		t.Fatalf("ran %d ticks, err=%v", n, err)
	}
	if s.World.Player.Pos.X != 10+20*1.5 || s.World.Player.Pos.Y != 10 {
		t.Fatalf("position = %v", s.World.Player.Pos)
	}
	if s.Loop.Redraws() != 20 {
		t.Fatalf("expected one redraw per tick, got %d", s.Loop.Redraws())
	}
}

func TestSession_CancelStopsRunTicks(t *testing.T) {
	s := NewSession()
	n, err := s.RunTicks(100, CancelAt(4, Hold(DirUp)))
	if err != nil {
		t.Fatal(err)
	}
	if n != 5 {
		t.Fatalf("expected to stop on the 5th tick, stopped after %d", n)
	}
}

func TestSession_PresentedFrameMatchesCanvas(t *testing.T) {
	s := NewSession(WithCursor(5, 5))
	if _, err := s.Step(InputSnapshot{}); err != nil {
		t.Fatal(err)
	}
	for i := range s.Canvas.Pix {
		if s.Canvas.Pix[i] != s.Screen.Frame.Pix[i] {
			t.Fatalf("presented frame differs from canvas at byte %d", i)
		}
	}
	before := s.Screen.Checksum()
	if _, err := s.Step(InputSnapshot{Held: [dirCount]bool{DirLeft: true}}); err != nil {
		t.Fatal(err)
	}
	if s.Screen.Checksum() == before {
		t.Fatal("moving the player should change the presented frame")
	}
}

func TestRunHeadless_StopsAtTickLimit(t *testing.T) {
	s := NewSession()
	err := RunHeadless(context.Background(), s, Hold(DirDown), HeadlessConfig{Hz: 1000, Ticks: 5})
	if err != nil {
		t.Fatal(err)
	}
	if s.Loop.Tick() != 5 {
		t.Fatalf("expected 5 ticks, got %d", s.Loop.Tick())
	}
}

func TestRunHeadless_StopsOnCancel(t *testing.T) {
	s := NewSession()
	err := RunHeadless(context.Background(), s, CancelAt(2, nil), HeadlessConfig{Hz: 1000})
	if err != nil {
		t.Fatal(err)
	}
	if !s.Loop.Exited() || s.Loop.Tick() != 3 {
		t.Fatalf("exited=%v tick=%d", s.Loop.Exited(), s.Loop.Tick())
	}
}

func TestRunHeadless_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := RunHeadless(ctx, NewSession(), nil, HeadlessConfig{Hz: 100})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestDebugReport_Contents(t *testing.T) {
	s := NewSession(WithPlayer(12, 34, 5), WithCursor(7, 8))
	if _, err := s.RunTicks(3, nil); err != nil {
		t.Fatal(err)
	}
	r := s.Loop.DebugReport(4)
	for _, want := range []string{
		s.Loop.Session().String(),
		"tick=3",
		"player=(12.00,34.00) r=5",
		"cursor=(7,8)",
		"redraw",
	} {
		if !strings.Contains(r, want) {
			t.Fatalf("report missing %q:\n%s", want, r)
		}
	}
}

func TestCopyDebugReport_UsesClipboard(t *testing.T) {
	var got string
	orig := copyToClipboard
	copyToClipboard = func(s string) error { got = s; return nil }
	defer func() { copyToClipboard = orig }()

	s := NewSession()
	if !s.Loop.CopyDebugReport() {
		t.Fatal("copy should succeed")
	}
	if !strings.HasPrefix(got, "--- tiny-voxel debug report ---") {
		t.Fatalf("clipboard got %q", got)
	}

	copyToClipboard = func(string) error { return errors.New("no clipboard") }
	if s.Loop.CopyDebugReport() {
		t.Fatal("copy failure should be reported")
	}
}
