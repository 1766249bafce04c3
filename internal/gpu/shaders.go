// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/naga"

	"github.com/gogpu/rc2d/cascade"
	"github.com/gogpu/rc2d/internal/cache"
)

// Embedded WGSL shader sources.

//go:embed shaders/radiance_cascades.wgsl
var cascadeShaderSource string

//go:embed shaders/rc_finalize.wgsl
var finalizeShaderSource string

// ShaderEntryPoint is the compute entry point of both shaders.
const ShaderEntryPoint = "main"

// Specialize substitutes the hierarchy constants into a shader template.
// viewportHistory selects whether the history lightmap is addressed in
// viewport space.
func Specialize(src string, p cascade.Params, viewportHistory bool) string {
	r := strings.NewReplacer(
		"@BRANCHING@", strconv.Itoa(p.Branching),
		"@DIRECTION_OFFSET@", strconv.Itoa(p.DirectionOffset),
		"@VIEWPORT_HISTORY@", strconv.FormatBool(viewportHistory),
	)
	return r.Replace(src)
}

// CascadeShader returns the specialized cascade pass source.
func CascadeShader(p cascade.Params, viewportHistory bool) string {
	return Specialize(cascadeShaderSource, p, viewportHistory)
}

// FinalizeShader returns the specialized finalize pass source.
func FinalizeShader(p cascade.Params) string {
	return Specialize(finalizeShaderSource, p, false)
}

// compile is the shader compiler used by NewPipeline.
var compile = CompileSPIRV

// shaderKey identifies one specialization of an embedded shader. The
// grid size is a uniform, so it is not part of the key.
type shaderKey struct {
	shader          string
	branching       int
	directionOffset int
	viewportHistory bool
}

func newShaderKey(shader string, p cascade.Params, viewportHistory bool) shaderKey {
	return shaderKey{
		shader:          shader,
		branching:       p.Branching,
		directionOffset: p.DirectionOffset,
		viewportHistory: viewportHistory,
	}
}

// spirvCache holds compiled SPIR-V per shader specialization. Pipelines are
// rebuilt on every resize while the hierarchy rarely changes; a few
// hierarchies times two shaders fit.
var spirvCache = cache.New[shaderKey, []uint32](8)

// compileCached compiles src, the source specialized for key, through
// spirvCache.
func compileCached(key shaderKey, src string) ([]uint32, error) {
	return spirvCache.GetOrCreate(key, func() ([]uint32, error) {
		return compile(src)
	})
}

// CompileSPIRV compiles WGSL source to SPIR-V words.
func CompileSPIRV(wgsl string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShaderCompile, err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("%w: SPIR-V length %d is not word aligned", ErrShaderCompile, len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return code, nil
}
