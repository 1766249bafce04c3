// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rc2d

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/rc2d/cascade"
	"github.com/gogpu/rc2d/field"
	"github.com/gogpu/rc2d/gpucore"
	"github.com/gogpu/rc2d/internal/gpu"
	"github.com/gogpu/rc2d/internal/parallel"
	"github.com/gogpu/rc2d/internal/rc"
)

// executor runs whole frames. run writes the lightmap into out only when
// the frame succeeds; a failed frame leaves the executor's history as it
// was.
type executor interface {
	name() string
	run(ctx context.Context, u cascade.Uniforms, scene *field.Scene, out *field.Texture, stats *FrameStats) error
	resetHistory() error
	close()
}

// cpuExecutor runs the reference kernels on a worker pool.
type cpuExecutor struct {
	cfg  Config
	pool *parallel.WorkerPool
	bufs *rc.Buffers

	// lightmaps are the two history slots; lightmaps[cur] holds the last
	// finished frame once hasHistory is set.
	lightmaps  [2]*field.Texture
	cur        int
	hasHistory bool
}

func newCPUExecutor(cfg Config) *cpuExecutor {
	w, h := cfg.LightmapSize()
	return &cpuExecutor{
		cfg:       cfg,
		pool:      parallel.NewWorkerPool(cfg.Workers),
		bufs:      rc.NewBuffers(cfg.Params),
		lightmaps: [2]*field.Texture{field.NewTexture(w, h), field.NewTexture(w, h)},
	}
}

func (e *cpuExecutor) name() string { return BackendCPU }

func (e *cpuExecutor) run(ctx context.Context, u cascade.Uniforms, scene *field.Scene, out *field.Texture, stats *FrameStats) error {
	in := &rc.Inputs{
		Params:   e.cfg.Params,
		Uniforms: u,
		Scene:    scene,
		Domain:   e.cfg.Finalize.Domain,
	}
	if e.hasHistory {
		in.History = e.lightmaps[e.cur]
	}

	next := 1 - e.cur
	var rays rc.Stats
	passes, err := rc.Run(ctx, e.pool, in, e.bufs, e.cfg.finalizeConfig(), e.lightmaps[next], &rays)
	if err != nil {
		return err
	}
	if err := out.CopyFrom(e.lightmaps[next]); err != nil {
		return err
	}

	e.cur = next
	e.hasHistory = true
	stats.Passes = passes
	stats.Rays = rays.Counts()
	return nil
}

func (e *cpuExecutor) resetHistory() error {
	e.hasHistory = false
	return nil
}

func (e *cpuExecutor) close() {
	e.pool.Close()
}

// gpuExecutor runs the WGSL pipeline on a GPUAdapter.
type gpuExecutor struct {
	pipeline *gpu.Pipeline
}

func newGPUExecutor(a gpucore.GPUAdapter, cfg Config) (*gpuExecutor, error) {
	w, h := cfg.LightmapSize()
	pl, err := gpu.NewPipeline(a, gpu.Config{
		Params:         cfg.Params,
		Finalize:       cfg.finalizeConfig(),
		LightmapWidth:  w,
		LightmapHeight: h,
	})
	if err != nil {
		return nil, err
	}
	return &gpuExecutor{pipeline: pl}, nil
}

func (e *gpuExecutor) name() string { return BackendGPU }

func (e *gpuExecutor) run(ctx context.Context, u cascade.Uniforms, scene *field.Scene, out *field.Texture, stats *FrameStats) error {
	passes, err := e.pipeline.Run(ctx, u, scene, out)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("rc2d: gpu frame: %w", err)
	}
	stats.Passes = passes
	return nil
}

func (e *gpuExecutor) resetHistory() error {
	return e.pipeline.ResetHistory()
}

func (e *gpuExecutor) close() {
	e.pipeline.Close()
}

// softwareDevice is implemented by devices that can tell whether they
// emulate a GPU on the CPU.
type softwareDevice interface {
	Software() bool
}

// newExecutor picks the executor for cfg: the GPU pipeline when an adapter
// is configured and usable, the CPU otherwise.
func newExecutor(a gpucore.GPUAdapter, cfg Config) executor {
	if a == nil {
		return newCPUExecutor(cfg)
	}
	if sd, ok := a.(softwareDevice); ok && sd.Software() {
		Logger().Info("rc2d: software GPU adapter, using CPU executor")
		return newCPUExecutor(cfg)
	}
	e, err := newGPUExecutor(a, cfg)
	if err != nil {
		Logger().Warn("rc2d: GPU pipeline unavailable, falling back to CPU", "err", err)
		return newCPUExecutor(cfg)
	}
	return e
}
