// Package render owns the per-frame state and drives one tick at a time:
// clear, frame-time graph, HUD text, ray trace, then hand the buffer to a
// [Display].
//
// # Example
//
//	loop, err := render.New(cfg, face)
//	err = loop.Run(ctx, render.FrameLimit(60), display)
//
// # Thread Safety
//
// A Loop is NOT safe for concurrent use. The tracer may fan out internally,
// but every stage completes before the next starts and before Blit.
package render
