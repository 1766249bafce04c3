package main

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/rc2d"
	"github.com/gogpu/rc2d/field"
)

// render tone maps lm, upscales it by scale with nearest-neighbor sampling
// so probe texels stay visible, and draws caption in the top-left corner.
func render(lm *field.Texture, exposure float32, scale int, caption string) *image.RGBA {
	src := lm.Image(exposure)
	scale = max(scale, 1)
	dst := image.NewRGBA(image.Rect(0, 0, lm.Width*scale, lm.Height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	if caption != "" {
		face := basicfont.Face7x13
		width := font.MeasureString(face, caption).Ceil()
		bar := image.Rect(0, 0, width+8, face.Height+6).Intersect(dst.Bounds())
		draw.Draw(dst, bar, image.NewUniform(color.RGBA{A: 160}), image.Point{}, draw.Over)

		d := &font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(color.White),
			Face: face,
			Dot:  fixed.P(4, 3+face.Ascent),
		}
		d.DrawString(caption)
	}
	return dst
}

func writePNG(path string, lm *field.Texture, exposure float32, scale int, caption string) error {
	f, err := os.Create(path) //nolint:gosec // output path from flags
	if err != nil {
		return err
	}
	if err := png.Encode(f, render(lm, exposure, scale, caption)); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

var printer = message.NewPrinter(language.English)

// printStats writes one line per frame. Ray counts are grouped by thousands.
func printStats(w io.Writer, s rc2d.FrameStats) {
	printer.Fprintf(w, "frame %d [%s] %d passes in %v", s.Frame, s.Backend, s.Passes, s.Duration)
	if total := s.TotalRays(); total > 0 {
		printer.Fprintf(w, ", %d rays: %d hit, %d glow, %d sky, %d unresolved",
			total,
			s.Rays[rc2d.OutcomeHit],
			s.Rays[rc2d.OutcomeGlow],
			s.Rays[rc2d.OutcomeSky],
			s.Rays[rc2d.OutcomeUnresolved]+s.Rays[rc2d.OutcomeEscaped])
	}
	if s.BounceOffset != (image.Point{}) {
		printer.Fprintf(w, ", bounce offset %v", s.BounceOffset)
	}
	printer.Fprintln(w)
}
