package main

import (
	"context"
	"fmt"
	"image"
	"math"
	"slices"

	"github.com/gogpu/rc2d"
	"github.com/gogpu/rc2d/field"
	"github.com/gogpu/rc2d/tiles"
)

// demo is a scene the command can light.
type demo struct {
	name  string
	about string

	// size is the grid size the scene needs, or zero for any size.
	size image.Point

	// run computes one frame with the camera panned by pan.
	run func(ctx context.Context, l *rc2d.Lighting, pan image.Point) error
}

var demos = []demo{
	{name: "point", about: "a single warm light in open space", run: fieldScene(pointLight)},
	{name: "wall", about: "two lights, a wall with a gap and colored bounce surfaces", run: fieldScene(wallAndGap)},
	{name: "sky", about: "terrain lit only by the sky", run: fieldScene(skyTerrain)},
	{name: "cave", about: "a tile world with a cave and torches", run: caveScene()},
	{name: "layers", about: "scene loaded from -density, -emissive and -albedo"},
}

func sceneNames() []string {
	names := make([]string, len(demos))
	for i, d := range demos {
		names[i] = d.name
	}
	return names
}

func findScene(name string) (demo, bool) {
	i := slices.IndexFunc(demos, func(d demo) bool { return d.name == name })
	if i < 0 {
		return demo{}, false
	}
	return demos[i], true
}

// fieldScene runs a scene built directly on the input grid. Panning moves
// the grid origin, so the bounce history follows the scene.
func fieldScene(build func(s *field.Scene, pan image.Point)) func(context.Context, *rc2d.Lighting, image.Point) error {
	var s *field.Scene
	return func(ctx context.Context, l *rc2d.Lighting, pan image.Point) error {
		p := l.Config().Params
		if s == nil || s.Density.Width != p.Width || s.Density.Height != p.Height {
			s = field.NewScene(p.Width, p.Height)
		} else {
			s.Clear()
		}
		build(s, pan)
		return l.Frame(ctx, s, pan)
	}
}

var (
	warm  = field.RGB{R: 40, G: 28, B: 14}
	cold  = field.RGB{R: 10, G: 20, B: 40}
	stone = field.Gray(0.7)
	red   = field.RGB{R: 0.9, G: 0.2, B: 0.15}
)

// lamp places a 3x3 emitter at (x, y) shifted against pan.
func lamp(s *field.Scene, x, y int, c field.RGB, pan image.Point) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			px, py := x+dx-pan.X, y+dy-pan.Y
			if s.Emissive.InBounds(px, py) {
				s.SetEmissive(px, py, c)
			}
		}
	}
}

func solid(s *field.Scene, r image.Rectangle, albedo field.RGB, pan image.Point) {
	s.FillSolid(r.Sub(pan).Intersect(s.Density.Bounds()), albedo)
}

func pointLight(s *field.Scene, pan image.Point) {
	w, h := s.Size()
	lamp(s, w/2, h/2, warm, pan)
}

func wallAndGap(s *field.Scene, pan image.Point) {
	w, h := s.Size()
	lamp(s, w/4, h/3, warm, pan)
	lamp(s, w/8, 3*h/4, cold, pan)

	// Wall with a gap at a third of its height.
	gap := h / 3
	solid(s, image.Rect(w/2, h/8, w/2+4, gap), stone, pan)
	solid(s, image.Rect(w/2, gap+h/10, w/2+4, 7*h/8), stone, pan)

	// Floor and a red block to show colored bounce.
	solid(s, image.Rect(0, h-6, w, h), stone, pan)
	solid(s, image.Rect(3*w/4, h-30, 3*w/4+20, h-6), red, pan)
}

func skyTerrain(s *field.Scene, pan image.Point) {
	w, h := s.Size()
	grass := field.RGB{R: 0.45, G: 0.6, B: 0.3}
	for x := range w {
		wx := float64(x + pan.X)
		top := h*2/3 + int(10*math.Sin(wx/23)+6*math.Sin(wx/7)) - pan.Y
		s.FillSolid(image.Rect(x, top, x+1, h).Intersect(s.Density.Bounds()), grass)
	}
	// Overhang.
	solid(s, image.Rect(w/3, h/3, w/2, h/3+5), stone, pan)
}

// caveWorld builds a tile world with hills, a tunnel and torches.
func caveWorld() *tiles.Grid {
	const ww, wh = 512, 256
	g := tiles.NewGrid(ww, wh)
	dirt := tiles.Tile{Solid: true, Albedo: [3]uint8{140, 100, 70}}
	rock := tiles.Tile{Solid: true, Albedo: [3]uint8{110, 110, 120}}
	torch := tiles.Tile{Emission: [3]uint8{255, 170, 80}, Albedo: [3]uint8{255, 255, 255}}

	for x := range ww {
		surface := 160 + int(12*math.Sin(float64(x)/31)+5*math.Sin(float64(x)/9))
		g.FillRect(x, 0, x+1, surface-12, rock)
		g.FillRect(x, surface-12, x+1, surface, dirt)
	}
	// Tunnel under the surface, open to the sky at its left end.
	g.FillRect(200, 120, 330, 132, tiles.Tile{})
	g.FillRect(200, 132, 208, 175, tiles.Tile{})
	for x := 220; x < 330; x += 24 {
		g.Set(x, 121, torch)
	}
	return g
}

func caveScene() func(context.Context, *rc2d.Lighting, image.Point) error {
	world := caveWorld()
	var ex tiles.Extractor
	return func(ctx context.Context, l *rc2d.Lighting, pan image.Point) error {
		// Screen pan is y-down; the tile world is y-up.
		view := tiles.View{CenterX: 260 + pan.X, CenterY: 140 - pan.Y, Width: 96, Height: 64}
		in, err := ex.Extract(world, view)
		if err != nil {
			return err
		}
		return l.FrameTiles(ctx, in)
	}
}

// layersScene loads a scene from image files. Emissive and albedo are
// optional; a missing albedo is mid gray.
func layersScene(densityPath, emissivePath, albedoPath string) (demo, error) {
	if densityPath == "" {
		return demo{}, fmt.Errorf("-density is required for the layers scene")
	}
	den, err := field.LoadFile(densityPath)
	if err != nil {
		return demo{}, err
	}
	s := field.NewScene(den.Width, den.Height)
	if err := s.Density.CopyFrom(den); err != nil {
		return demo{}, err
	}
	s.Albedo.Fill(field.Gray(0.5))

	for _, layer := range []struct {
		path string
		dst  *field.Texture
	}{{emissivePath, s.Emissive}, {albedoPath, s.Albedo}} {
		if layer.path == "" {
			continue
		}
		t, err := field.LoadFile(layer.path)
		if err != nil {
			return demo{}, err
		}
		if err := layer.dst.CopyFrom(t); err != nil {
			return demo{}, fmt.Errorf("%s: %w", layer.path, err)
		}
	}

	return demo{
		name:  "layers",
		about: densityPath,
		size:  image.Pt(den.Width, den.Height),
		run: func(ctx context.Context, l *rc2d.Lighting, pan image.Point) error {
			return l.Frame(ctx, s, pan)
		},
	}, nil
}
