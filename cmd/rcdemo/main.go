// Command rcdemo renders radiance cascade lightmaps of built-in scenes.
//
// Usage:
//
//	rcdemo -scene wall -frames 4 -output wall.png
//	rcdemo -scene cave -backend auto -preview
//
// Scenes: point, wall, sky, cave (a tile world), and layers (PNG files given
// with -density, -emissive and -albedo).
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/rc2d"
	"github.com/gogpu/rc2d/backend"

	// WebGPU HAL device (registered via init).
	_ "github.com/gogpu/rc2d/backend/native"
)

func main() {
	var (
		width    = flag.Int("width", 256, "input grid width")
		height   = flag.Int("height", 192, "input grid height")
		sceneArg = flag.String("scene", "wall", "scene: "+strings.Join(sceneNames(), ", "))
		frames   = flag.Int("frames", 4, "frames to compute; bounce light accumulates over frames")
		output   = flag.String("output", "lightmap.png", "output PNG file")
		scale    = flag.Int("scale", 3, "output upscale factor")
		exposure = flag.Float64("exposure", 1, "tone mapping exposure")
		backendF = flag.String("backend", "cpu", "executor: cpu, auto, or a registered GPU backend ("+strings.Join(backend.Available(), ", ")+")")
		k        = flag.Int("k", 1, "direction offset K; cascade 0 has 4^K directions")
		radius   = flag.Int("radius", 1, "finalize blur radius")
		weight   = flag.String("weight", "binomial", "finalize blur weight: none, box, binomial, gaussian")
		damping  = flag.Float64("damping", rc2d.DefaultBounceDamping, "bounce damping in [0, 1)")
		bright   = flag.Float64("brightness", 1, "lightmap gain")
		preview  = flag.Bool("preview", false, "show the lightmap in the terminal; arrows pan, +/- exposure, r reset, q quit")
		verbose  = flag.Bool("v", false, "debug logging")
		density  = flag.String("density", "", "density layer for -scene layers")
		emissive = flag.String("emissive", "", "emissive layer for -scene layers")
		albedo   = flag.String("albedo", "", "albedo layer for -scene layers")
	)
	flag.Parse()

	if *verbose {
		rc2d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	d, ok := findScene(*sceneArg)
	if !ok {
		log.Fatalf("unknown scene %q (have %s)", *sceneArg, strings.Join(sceneNames(), ", "))
	}
	if d.name == "layers" {
		var err error
		if d, err = layersScene(*density, *emissive, *albedo); err != nil {
			log.Fatalf("Failed to load layers: %v", err)
		}
		*width, *height = d.size.X, d.size.Y
	}

	w, err := rc2d.ParseWeight(*weight)
	if err != nil {
		log.Fatal(err)
	}
	opts := []rc2d.Option{
		rc2d.WithDirectionOffset(*k),
		rc2d.WithFinalize(rc2d.Finalize{Radius: *radius, Weight: w, Domain: rc2d.DomainFullGrid}),
		rc2d.WithBounceDamping(float32(*damping)),
		rc2d.WithBrightness(float32(*bright)),
	}

	dev, err := openBackend(*backendF)
	if err != nil {
		log.Fatalf("Failed to open backend: %v", err)
	}
	if dev != nil {
		defer dev.Close()
		opts = append(opts, rc2d.WithGPU(dev))
	}

	l, err := rc2d.New(*width, *height, opts...)
	if err != nil {
		log.Fatalf("Failed to configure lighting: %v", err)
	}
	defer l.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *preview {
		if err := runPreview(ctx, l, d, float32(*exposure)); err != nil {
			log.Fatalf("Preview: %v", err)
		}
		return
	}

	for range *frames {
		if err := d.run(ctx, l, image.Point{}); err != nil {
			log.Fatalf("Frame failed: %v", err)
		}
		printStats(os.Stdout, l.FrameStats())
	}

	caption := fmt.Sprintf("%s  %s  K=%d  %d frames", d.name, l.Config().Backend, *k, *frames)
	if err := writePNG(*output, l.Lightmap(), float32(*exposure), *scale, caption); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Lightmap saved to %s\n", *output)
}

// openBackend opens the GPU device for name. "cpu" returns nil; "auto"
// returns nil when no GPU backend can be opened.
func openBackend(name string) (backend.Device, error) {
	switch name {
	case "cpu":
		return nil, nil
	case "auto":
		dev, err := backend.OpenDefault()
		if err != nil {
			log.Printf("No GPU backend, using CPU: %v", err)
			return nil, nil
		}
		log.Printf("Using GPU %s", dev.Name())
		return dev, nil
	default:
		return backend.Open(name)
	}
}

func runPreview(ctx context.Context, l *rc2d.Lighting, d demo, exposure float32) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	p := &preview{screen: screen, lighting: l, demo: d, exposure: exposure}
	return p.loop(ctx)
}
