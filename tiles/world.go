// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package tiles

import "github.com/gogpu/rc2d/field"

// Tile holds the lighting properties of one foreground tile.
type Tile struct {
	Solid bool

	// Emission is the emitted light in 0..255 per channel. Non-solid tiles
	// with emission are glowing air.
	Emission [3]uint8

	// Albedo is the bounce reflectance in 0..255 per channel.
	Albedo [3]uint8
}

// Bedrock is the tile below the world (y < 0).
var Bedrock = Tile{Solid: true, Albedo: [3]uint8{128, 128, 128}}

// World is a wrapping tile world. Tile coordinates have y pointing up; row
// 0 is the lowest row above bedrock, and x wraps modulo Width.
type World interface {
	// Width and Height return the world size in tiles.
	Width() int
	Height() int

	// Tile returns the foreground tile at (x, y) with 0 <= x < Width and
	// 0 <= y < Height. ok is false for tiles that are not loaded; they
	// light like air.
	Tile(x, y int) (t Tile, ok bool)
}

// Grid is an in-memory World.
type Grid struct {
	w, h  int
	tiles []Tile
}

// NewGrid returns an all-air grid of w x h tiles.
func NewGrid(w, h int) *Grid {
	return &Grid{w: w, h: h, tiles: make([]Tile, w*h)}
}

// Width implements World.
func (g *Grid) Width() int { return g.w }

// Height implements World.
func (g *Grid) Height() int { return g.h }

// Tile implements World.
func (g *Grid) Tile(x, y int) (Tile, bool) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return Tile{}, false
	}
	return g.tiles[y*g.w+x], true
}

// Set stores t at (x, y). Out-of-range coordinates are ignored.
func (g *Grid) Set(x, y int, t Tile) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return
	}
	g.tiles[y*g.w+x] = t
}

// FillRect stores t in every tile of [x0, x1) x [y0, y1).
func (g *Grid) FillRect(x0, y0, x1, y1 int, t Tile) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			g.Set(x, y, t)
		}
	}
}

func unit8(v [3]uint8) field.RGB {
	return field.RGB{R: float32(v[0]) / 255, G: float32(v[1]) / 255, B: float32(v[2]) / 255}
}
