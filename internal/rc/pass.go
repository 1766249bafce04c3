// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rc

import (
	"context"
	"sync/atomic"

	"github.com/gogpu/rc2d/cascade"
	"github.com/gogpu/rc2d/field"
	"github.com/gogpu/rc2d/internal/parallel"
)

// Stats counts ray outcomes across the passes of a frame.
// It is safe for concurrent use by the probe kernels.
type Stats struct {
	rays [NumOutcomes]atomic.Int64
}

// Count returns the number of rays that resolved as o.
func (s *Stats) Count(o Outcome) int64 {
	if s == nil || o >= NumOutcomes {
		return 0
	}
	return s.rays[o].Load()
}

// Counts returns a snapshot of all outcome counters.
func (s *Stats) Counts() [NumOutcomes]int64 {
	var c [NumOutcomes]int64
	for i := range c {
		c[i] = s.Count(Outcome(i))
	}
	return c
}

func (s *Stats) add(local *[NumOutcomes]int64) {
	if s == nil {
		return
	}
	for i, v := range local {
		if v != 0 {
			s.rays[i].Add(v)
		}
	}
}

// Buffers holds the textures a CPU frame writes. A and B are the ping-pong
// cascade textures, sized cascade.Params.MaxTextureSize.
type Buffers struct {
	Cascades   [2]*field.Texture
	Irradiance *field.Texture
}

// NewBuffers allocates frame buffers for p.
func NewBuffers(p cascade.Params) *Buffers {
	w, h := p.MaxTextureSize()
	return &Buffers{
		Cascades:   [2]*field.Texture{field.NewTexture(w, h), field.NewTexture(w, h)},
		Irradiance: field.NewTexture(p.Width, p.Height),
	}
}

// Cascade computes cascade n into dst. parent holds cascade n+1 and is not
// read at the coarsest cascade. dst and parent must be distinct.
func Cascade(pool *parallel.WorkerPool, in *Inputs, n int, dst, parent *field.Texture, stats *Stats) {
	p := in.Params
	parallel.Dispatch(pool, p.ProbesW(n), p.ProbesH(n), func(x, y int) {
		var local [NumOutcomes]int64
		probeKernel(in, n, x, y, dst, parent, &local)
		stats.add(&local)
	})
}

func probeKernel(in *Inputs, n, x, y int, dst, parent *field.Texture, local *[NumOutcomes]int64) {
	p := in.Params
	nd := p.NumDirections(n)
	cx, cy := p.ProbeCenter(n, x, y)
	top := n == p.Coarsest()

	for d := range nd {
		dx, dy := Direction(d, nd)
		c, o := TraceRay(in, n, cx, cy, dx, dy)
		if o.Merges() && !top {
			c = Merge(p, parent, n, x, y, d)
		}
		local[o]++
		tx, ty := p.Texel(n, x, y, d)
		dst.Set(tx, ty, c)
	}
}

// Run executes a whole frame: every cascade from the coarsest down to 0,
// then Finalize into lightmap. Cancellation is checked between passes; a
// cancelled frame returns ctx.Err() and leaves lightmap untouched.
func Run(ctx context.Context, pool *parallel.WorkerPool, in *Inputs, bufs *Buffers,
	cfg FinalizeConfig, lightmap *field.Texture, stats *Stats) (passes int, err error) {
	p := in.Params
	for n := p.Coarsest(); n >= 0; n-- {
		if err := ctx.Err(); err != nil {
			return passes, err
		}
		w, r := cascade.PingPong(n)
		Cascade(pool, in, n, bufs.Cascades[w], bufs.Cascades[r], stats)
		passes++
	}
	if err := ctx.Err(); err != nil {
		return passes, err
	}

	c0, _ := cascade.PingPong(0)
	Finalize(pool, in, cfg, bufs.Cascades[c0], bufs.Irradiance, lightmap)
	return passes + 1, nil
}
