package main

import (
	"context"
	"image"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/rc2d"
	"github.com/gogpu/rc2d/field"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func TestPreview_Draw(t *testing.T) {
	screen := newSimScreen(t, 4, 3)
	p := &preview{screen: screen, exposure: 1}

	// Top half white, bottom half black.
	lm := field.NewTexture(8, 4)
	lm.FillRect(image.Rect(0, 0, 8, 2), field.White)
	p.draw(lm, "ok")

	mainc, _, style, _ := screen.GetContent(0, 0)
	if mainc != '▀' {
		t.Fatalf("cell (0,0) = %q, want upper half block", mainc)
	}
	fg, bg, _ := style.Decompose()
	if fg != tcell.NewRGBColor(255, 255, 255) || bg != tcell.NewRGBColor(255, 255, 255) {
		t.Errorf("cell (0,0) colors = %v/%v, want white/white", fg, bg)
	}

	_, _, style, _ = screen.GetContent(0, 1)
	fg, bg, _ = style.Decompose()
	if fg != tcell.NewRGBColor(0, 0, 0) || bg != tcell.NewRGBColor(0, 0, 0) {
		t.Errorf("cell (0,1) colors = %v/%v, want black/black", fg, bg)
	}

	if mainc, _, _, _ := screen.GetContent(1, 2); mainc != 'k' {
		t.Errorf("status row = %q, want 'k'", mainc)
	}
}

func TestPreview_Loop(t *testing.T) {
	screen := newSimScreen(t, 40, 12)
	l, err := rc2d.New(32, 32)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer l.Close()

	d, _ := findScene("point")
	p := &preview{screen: screen, lighting: l, demo: d, exposure: 1}

	screen.InjectKey(tcell.KeyRight, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, '+', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	if err := p.loop(context.Background()); err != nil {
		t.Fatalf("loop: %v", err)
	}
	if p.pan != image.Pt(2, 0) {
		t.Errorf("pan = %v, want (2,0)", p.pan)
	}
	if p.exposure != 1.25 {
		t.Errorf("exposure = %v, want 1.25", p.exposure)
	}
	// Initial frame plus one per handled key before q.
	if got := l.FrameStats().Frame; got < 3 {
		t.Errorf("frames = %d, want at least 3", got)
	}
	if got := l.FrameStats().BounceOffset; got != (image.Point{}) {
		t.Errorf("last BounceOffset = %v, want zero after the exposure change", got)
	}
}
