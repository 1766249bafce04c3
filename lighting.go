// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rc2d

import (
	"context"
	"image"
	"sync"
	"time"

	"github.com/gogpu/rc2d/cascade"
	"github.com/gogpu/rc2d/field"
	"github.com/gogpu/rc2d/tiles"
)

// Lighting computes radiance-cascade lightmaps frame by frame.
//
// Each Frame traces every cascade from the coarsest down to 0, merges them,
// and finalizes cascade 0 into a lightmap. Solid texels also reflect the
// previous frame's lightmap, reprojected by the movement of the grid
// origin, which gives one bounce of indirect light that accumulates over
// frames.
//
// Frames are all-or-nothing: a failed or cancelled frame leaves the
// lightmap, the bounce history and the grid origin untouched.
//
// Lighting is safe for concurrent use.
type Lighting struct {
	mu sync.Mutex

	opts   options
	cfg    Config
	exec   executor
	detach func()

	// lightmap is the last finished frame; scratch receives the next one.
	lightmap *field.Texture
	scratch  *field.Texture

	origin     image.Point
	hasHistory bool
	frames     uint64
	stats      FrameStats
	closed     bool

	// historyViewport is the viewport offset the history was written under.
	historyViewport image.Point
}

// New creates a Lighting for a width x height input grid.
//
// Configuration errors (see cascade.Params.Validate and the Err values of
// this package) are returned here and never surface from Frame. A GPU
// adapter that cannot run the pipeline is not an error: Lighting logs a
// warning and uses the CPU executor.
func New(width, height int, opts ...Option) (*Lighting, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	l := &Lighting{opts: o, detach: func() {}}
	if err := l.configure(width, height, o.viewport); err != nil {
		return nil, err
	}
	if o.gpu != nil {
		l.detach = attachLogger(o.gpu)
	}
	return l, nil
}

// configure (re)builds the executor and lightmaps. On error l is unchanged.
func (l *Lighting) configure(width, height int, viewport image.Rectangle) error {
	o := l.opts
	o.viewport = viewport
	cfg, err := resolve(width, height, o)
	if err != nil {
		return err
	}

	exec := newExecutor(o.gpu, cfg)
	cfg.Backend = exec.name()
	if l.exec != nil {
		l.exec.close()
	}
	l.exec = exec
	l.cfg = cfg
	l.opts.viewport = viewport

	w, h := cfg.LightmapSize()
	l.lightmap = field.NewFilled(w, h, field.White)
	l.scratch = field.NewTexture(w, h)
	l.hasHistory = false

	Logger().Info("rc2d: lighting configured",
		"backend", cfg.Backend,
		"params", cfg.Params.String(),
		"viewport", cfg.Viewport.String(),
		"finalize", cfg.Finalize.Weight.String(),
		"radius", cfg.Finalize.Radius)
	return nil
}

// Frame computes one lightmap from scene. origin is the grid origin of
// this frame in input pixels; the difference to the previous frame's origin
// reprojects the bounce history.
func (l *Lighting) Frame(ctx context.Context, scene *field.Scene, origin image.Point) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frame(ctx, scene, origin)
}

func (l *Lighting) frame(ctx context.Context, scene *field.Scene, origin image.Point) error {
	if l.closed {
		return ErrClosed
	}
	p := l.cfg.Params
	if err := scene.Validate(p.Width, p.Height); err != nil {
		return err
	}

	vp := l.cfg.Viewport
	var offset, shift image.Point
	if l.hasHistory {
		offset = origin.Sub(l.origin)
		shift = offset
		if l.cfg.Finalize.Domain == DomainViewport {
			// The kernels subtract the current viewport offset from the
			// history address; the history was written under the old one.
			shift = shift.Add(vp.Min.Sub(l.historyViewport))
		}
	}
	u := cascade.Uniforms{
		InputSize:      [2]uint32{uint32(p.Width), uint32(p.Height)},  //nolint:gosec // validated positive
		CascadeCount:   uint32(p.Count),                               //nolint:gosec // validated <= MaxCascades
		ViewportOffset: [2]uint32{uint32(vp.Min.X), uint32(vp.Min.Y)}, //nolint:gosec // viewport inside the grid
		ViewportSize:   [2]uint32{uint32(vp.Dx()), uint32(vp.Dy())},   //nolint:gosec // viewport inside the grid
		BounceDamping:  l.cfg.BounceDamping,
		GridOrigin:     [2]int32{int32(origin.X), int32(origin.Y)}, //nolint:gosec // tile coordinates
		BounceOffset:   [2]int32{int32(shift.X), int32(shift.Y)},   //nolint:gosec // tile coordinates
	}

	start := time.Now()
	stats := FrameStats{Backend: l.exec.name(), BounceOffset: offset}
	if err := l.exec.run(ctx, u, scene, l.scratch, &stats); err != nil {
		return err
	}

	l.lightmap, l.scratch = l.scratch, l.lightmap
	l.origin = origin
	l.historyViewport = vp.Min
	l.hasHistory = true
	l.frames++
	stats.Frame = l.frames
	stats.Duration = time.Since(start)
	l.stats = stats

	Logger().Debug("rc2d: frame",
		"frame", stats.Frame,
		"backend", stats.Backend,
		"passes", stats.Passes,
		"duration", stats.Duration,
		"bounceOffset", offset.String())
	return nil
}

// FrameTiles computes one lightmap from a tile extraction. The grid is
// resized and the viewport moved to match in when they differ; resizing
// drops the bounce history.
func (l *Lighting) FrameTiles(ctx context.Context, in *tiles.Input) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}

	p := l.cfg.Params
	vp := l.cfg.Viewport
	switch {
	case in.Params.Width != p.Width || in.Params.Height != p.Height || in.Viewport.Size() != vp.Size():
		if err := l.configure(in.Params.Width, in.Params.Height, in.Viewport); err != nil {
			return err
		}
	case in.Viewport != vp:
		if err := l.setViewportOffset(in.Viewport.Min); err != nil {
			return err
		}
	}
	return l.frame(ctx, in.Scene, in.Origin)
}

// SetViewportOffset moves the viewport to (x, y) keeping its size.
func (l *Lighting) SetViewportOffset(x, y int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	return l.setViewportOffset(image.Pt(x, y))
}

func (l *Lighting) setViewportOffset(pt image.Point) error {
	p := l.cfg.Params
	vp := l.cfg.Viewport.Sub(l.cfg.Viewport.Min).Add(pt)
	if err := checkViewport(vp, p.Width, p.Height); err != nil {
		return err
	}
	l.cfg.Viewport = vp
	l.opts.viewport = vp
	return nil
}

// Resize reconfigures the Lighting for a new input size and viewport (the
// zero rectangle selects the whole grid). The bounce history is dropped.
// On error the Lighting keeps its previous configuration.
func (l *Lighting) Resize(width, height int, viewport image.Rectangle) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	return l.configure(width, height, viewport)
}

// Lightmap returns a copy of the last finished lightmap. Before the first
// frame it is white.
func (l *Lighting) Lightmap() *field.Texture {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lightmap.Clone()
}

// HasHistory reports whether the next frame receives bounce light from a
// previous one.
func (l *Lighting) HasHistory() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hasHistory
}

// Reset drops the bounce history and whitens the lightmap, as after New.
func (l *Lighting) Reset() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	if err := l.exec.resetHistory(); err != nil {
		return err
	}
	l.hasHistory = false
	l.lightmap.Fill(field.White)
	return nil
}

// Config returns the resolved configuration.
func (l *Lighting) Config() Config {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cfg
}

// FrameStats returns the statistics of the last finished frame.
func (l *Lighting) FrameStats() FrameStats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}

// Close releases the executor. It does not close a GPU adapter passed with
// WithGPU. Close is idempotent.
func (l *Lighting) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	l.exec.close()
	l.detach()
}
