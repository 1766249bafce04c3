// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package parallel

// GroupSize is the side of one square execution group.
const GroupSize = 8

// Group is one GroupSize x GroupSize tile of a 2D index space, clipped to the
// space bounds.
type Group struct {
	// X0, Y0 is the first index covered by the group.
	X0, Y0 int

	// X1, Y1 is the exclusive end, clipped to the index space.
	X1, Y1 int
}

// Groups splits a w x h index space into row-major execution groups.
// Edge groups are clipped; an empty space yields no groups.
func Groups(w, h int) []Group {
	if w <= 0 || h <= 0 {
		return nil
	}
	gx := (w + GroupSize - 1) / GroupSize
	gy := (h + GroupSize - 1) / GroupSize
	groups := make([]Group, 0, gx*gy)
	for y := 0; y < h; y += GroupSize {
		for x := 0; x < w; x += GroupSize {
			groups = append(groups, Group{
				X0: x, Y0: y,
				X1: min(x+GroupSize, w), Y1: min(y+GroupSize, h),
			})
		}
	}
	return groups
}

// Dispatch runs kernel once for every (x, y) in a w x h index space, one pool
// work item per execution group, and returns after all groups finished.
//
// Kernels for distinct indices must not write shared memory other than their
// own output slot; there is no synchronization inside a dispatch.
// A nil pool runs the groups serially on the calling goroutine.
func Dispatch(pool *WorkerPool, w, h int, kernel func(x, y int)) {
	groups := Groups(w, h)
	if pool == nil || pool.Workers() == 1 || len(groups) == 1 {
		for _, g := range groups {
			g.run(kernel)
		}
		return
	}

	work := make([]func(), len(groups))
	for i, g := range groups {
		work[i] = func() { g.run(kernel) }
	}
	pool.ExecuteAll(work)
}

func (g Group) run(kernel func(x, y int)) {
	for y := g.Y0; y < g.Y1; y++ {
		for x := g.X0; x < g.X1; x++ {
			kernel(x, y)
		}
	}
}
