package main

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/rc2d"
	"github.com/gogpu/rc2d/field"
)

// preview shows lightmaps on a terminal, two pixels per cell using the
// upper half block: foreground is the upper pixel, background the lower.
type preview struct {
	screen   tcell.Screen
	lighting *rc2d.Lighting
	demo     demo
	exposure float32
	pan      image.Point
}

// draw scales lm to the screen, leaving the last row for status.
func (p *preview) draw(lm *field.Texture, status string) {
	s := p.screen
	s.Clear()
	cols, rows := s.Size()
	rows--
	if cols <= 0 || rows <= 0 {
		return
	}

	for cy := range rows {
		for cx := range cols {
			x := cx * lm.Width / cols
			top := lm.At(x, (2*cy)*lm.Height/(2*rows))
			bottom := lm.At(x, (2*cy+1)*lm.Height/(2*rows))
			style := tcell.StyleDefault.
				Foreground(p.color(top)).
				Background(p.color(bottom))
			s.SetContent(cx, cy, '▀', nil, style)
		}
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for i, r := range []rune(status) {
		if i >= cols {
			break
		}
		s.SetContent(i, rows, r, nil, style)
	}
}

func (p *preview) color(c field.RGB) tcell.Color {
	rgba := field.ToneMap(c, p.exposure)
	return tcell.NewRGBColor(int32(rgba.R), int32(rgba.G), int32(rgba.B))
}

func (p *preview) frame(ctx context.Context) error {
	if err := p.demo.run(ctx, p.lighting, p.pan); err != nil {
		return err
	}
	st := p.lighting.FrameStats()
	status := fmt.Sprintf(" %s [%s] frame %d  %v  pan %v  exposure %.2f  (arrows, +/-, r, q)",
		p.demo.name, st.Backend, st.Frame, st.Duration.Round(time.Microsecond), p.pan, p.exposure)
	p.draw(p.lighting.Lightmap(), status)
	p.screen.Show()
	return nil
}

// loop renders a frame after every key until q, Esc or cancellation.
func (p *preview) loop(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-ctx.Done()
		p.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	if err := p.frame(ctx); err != nil {
		return err
	}
	for {
		switch ev := p.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			return nil
		case *tcell.EventResize:
			p.screen.Sync()
		case *tcell.EventKey:
			if quit := p.key(ev); quit {
				return nil
			}
		default:
			continue
		}
		if err := p.frame(ctx); err != nil {
			return err
		}
	}
}

func (p *preview) key(ev *tcell.EventKey) (quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		p.pan.X -= 2
	case tcell.KeyRight:
		p.pan.X += 2
	case tcell.KeyUp:
		p.pan.Y -= 2
	case tcell.KeyDown:
		p.pan.Y += 2
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case '+', '=':
			p.exposure *= 1.25
		case '-':
			p.exposure /= 1.25
		case 'r':
			if err := p.lighting.Reset(); err != nil {
				return true
			}
		}
	}
	return false
}
