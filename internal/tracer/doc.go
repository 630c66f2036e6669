// Package tracer casts one ray per canvas pixel into a scene of spheres.
//
//   - [Viewport]: maps canvas pixels onto the camera-space viewing plane
//   - [Scene]: ordered spheres, ray origin and background color
//   - [Tracer]: renders a whole frame, optionally across worker goroutines
//
// There is no acceleration structure; a frame costs O(width*height*spheres).
//
// # Example
//
//	sc := tracer.DefaultScene()
//	tr := tracer.New(tracer.DefaultViewport(), 1, math.Inf(1))
//	err := tr.Render(ctx, c, sc)
package tracer
