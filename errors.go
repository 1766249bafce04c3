// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rc2d

import "errors"

// Configuration and lifecycle errors. Option errors are wrapped with the
// offending value; match them with errors.Is.
var (
	// ErrViewport is returned for an empty viewport or one that does not
	// lie inside the input grid.
	ErrViewport = errors.New("rc2d: invalid viewport")

	// ErrBounceDamping is returned for a bounce damping outside [0, 1).
	ErrBounceDamping = errors.New("rc2d: bounce damping out of range")

	// ErrBrightness is returned for a negative or non-finite brightness.
	ErrBrightness = errors.New("rc2d: invalid brightness")

	// ErrBlurRadius is returned for a negative finalize blur radius.
	ErrBlurRadius = errors.New("rc2d: invalid blur radius")

	// ErrClosed is returned by operations on a closed Lighting.
	ErrClosed = errors.New("rc2d: lighting closed")
)
