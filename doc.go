// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package rc2d computes 2D global illumination with radiance cascades.
//
// # Overview
//
// A scene is three textures of the same size: density (solid where
// non-zero), emissive radiance, and albedo. For every frame rc2d traces a
// hierarchy of probe grids ("cascades"). Cascade 0 has a probe per pixel and
// few directions over a short interval; each coarser cascade halves the
// probe density, multiplies the directions by the branching factor and
// reaches further. Rays that are not resolved inside their interval take
// the light of the next coarser cascade, so cascade 0 ends up with the full
// incoming radiance of every pixel. The finalize stage averages it into
// irradiance, blurs it, and writes a lightmap.
//
// # Quick Start
//
//	import "github.com/gogpu/rc2d"
//
//	l, err := rc2d.New(256, 256)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer l.Close()
//
//	scene := field.NewScene(256, 256)
//	scene.SetEmissive(128, 128, field.Gray(50))
//	scene.FillSolid(image.Rect(100, 60, 156, 68), field.Gray(0.8))
//
//	if err := l.Frame(ctx, scene, image.Point{}); err != nil {
//		log.Fatal(err)
//	}
//	l.Lightmap().SavePNG("lightmap.png", 1)
//
// # Bounce light
//
// Solid texels reflect the previous frame's lightmap, scaled by their
// albedo and the bounce damping. When the grid moves between frames (a
// camera following a player over a tile world), pass the new grid origin to
// Frame: the history is reprojected by the difference to the previous
// origin. See package tiles for building scenes from a tile world.
//
// # Executors
//
// By default frames run on the CPU, parallelized over all cores. With
// [WithGPU] the same passes run as WGSL compute shaders on a GPU adapter,
// for example one opened through package backend/native:
//
//	import _ "github.com/gogpu/rc2d/backend/native"
//
//	dev, err := backend.OpenDefault()
//	...
//	l, err := rc2d.New(256, 256, rc2d.WithGPU(dev))
//
// An adapter that cannot run the pipeline, or a software adapter, makes
// New fall back to the CPU executor. [Config] reports the executor in use.
//
// # Logging
//
// rc2d is silent by default. [SetLogger] enables structured logging through
// log/slog for this package, the GPU pipeline and attached devices.
package rc2d
