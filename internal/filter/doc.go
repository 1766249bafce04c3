// Package filter provides the convolution kernels used by the lightmap
// finalize stage.
//
// Every kernel is normalized so that its weights sum to 1.0, and 2D tables
// are the outer product of two identical 1D kernels of length 2r+1:
//   - None: identity, no spatial blur
//   - Box: uniform 1/(2r+1)
//   - Binomial: row 2r of Pascal's triangle (1 2 1 for r=1)
//   - Gaussian: sigma = r/2, truncated at +-r
package filter
