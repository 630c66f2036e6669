// Package canvas provides the owned pixel buffer every drawing operation
// targets.
//
//   - [Color]: 8-bit BGRA pixel value
//   - [Canvas]: contiguous row-major buffer with checked pixel access
//
// # Pixel Layout
//
// The buffer returned by [Canvas.Pix] holds 4 bytes per pixel in the order
// blue, green, red, alpha, rows top-down. Read as a little-endian uint32 a
// pixel is 0xAARRGGBB, which is what a 32-bit top-down DIB expects.
//
// # Thread Safety
//
// A Canvas has a single writer per frame. Concurrent writers are allowed only
// when each one owns a disjoint set of rows.
package canvas
