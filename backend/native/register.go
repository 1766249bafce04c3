// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import "github.com/gogpu/rc2d/backend"

func init() {
	backend.Register(backend.BackendNative, func() (backend.Device, error) {
		return Open()
	})
}

var _ backend.Device = (*Device)(nil)
