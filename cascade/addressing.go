// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cascade

// WorkgroupSize is the side of the square tile of probes (or lightmap pixels)
// processed by one execution group.
const WorkgroupSize = 8

// ProbesW returns the number of probe columns of cascade n.
func (p Params) ProbesW(n int) int {
	return p.Width / p.Spacing(n)
}

// ProbesH returns the number of probe rows of cascade n.
func (p Params) ProbesH(n int) int {
	return p.Height / p.Spacing(n)
}

// ProbeCenter returns the center of probe (x, y) of cascade n in input
// pixel space.
func (p Params) ProbeCenter(n, x, y int) (cx, cy float32) {
	s := float32(p.Spacing(n))
	return (float32(x) + 0.5) * s, (float32(y) + 0.5) * s
}

// Texel maps probe (x, y) and direction d of cascade n to its texel in the
// packed cascade texture. Directions fill the probe's square block row by row.
func (p Params) Texel(n, x, y, d int) (tx, ty int) {
	s := p.DirsSide(n)
	return x*s + d%s, y*s + d/s
}

// TextureSize returns the packed texture size of cascade n.
func (p Params) TextureSize(n int) (w, h int) {
	s := p.DirsSide(n)
	return p.ProbesW(n) * s, p.ProbesH(n) * s
}

// MaxTextureSize returns the smallest size that holds any cascade's packed
// texture. Ping-pong textures are allocated at this size.
func (p Params) MaxTextureSize() (w, h int) {
	for n := 0; n < p.Count; n++ {
		tw, th := p.TextureSize(n)
		w = max(w, tw)
		h = max(h, th)
	}
	return w, h
}

// Workgroups returns the number of 8x8 execution groups covering a w x h
// index space.
func Workgroups(w, h int) (gx, gy int) {
	return (w + WorkgroupSize - 1) / WorkgroupSize, (h + WorkgroupSize - 1) / WorkgroupSize
}

// PingPong reports which of the two cascade textures cascade n writes.
// Even cascades write slot A (0), odd cascades write slot B (1); the merge
// source of cascade n is the other slot. Cascade 0 therefore always ends
// in slot A.
func PingPong(n int) (write, read int) {
	if n%2 == 0 {
		return 0, 1
	}
	return 1, 0
}
