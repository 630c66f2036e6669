package storage

import (
	"image"
	"image/color/palette"
	"image/gif"
	"io"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
)

// Recorder collects downscaled paletted frames for an animated GIF.
type Recorder struct {
	maxWidth int
	delay    int
	frames   []*image.Paletted
}

// NewRecorder keeps frames at most maxWidth pixels wide (0 keeps the source
// size). delay is in hundredths of a second per frame.
func NewRecorder(maxWidth, delay int) *Recorder {
	if delay <= 0 {
		delay = 2
	}
	return &Recorder{maxWidth: maxWidth, delay: delay}
}

// Capture scales img into a Plan 9 palette frame. img is not retained.
func (r *Recorder) Capture(img image.Image) {
	src := img.Bounds()
	w, h := src.Dx(), src.Dy()
	if r.maxWidth > 0 && w > r.maxWidth {
		h = max(1, h*r.maxWidth/w)
		w = r.maxWidth
	}
	dst := image.NewPaletted(image.Rect(0, 0, w, h), palette.Plan9)
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, src, xdraw.Src, nil)
	r.frames = append(r.frames, dst)
}

func (r *Recorder) Len() int { return len(r.frames) }

func (r *Recorder) Reset() { r.frames = nil }

// Encode writes every captured frame as a looping GIF.
func (r *Recorder) Encode(w io.Writer) error {
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.delay)
	}
	return gif.EncodeAll(w, &anim)
}

// SaveGIF writes the recording to path. An empty recording writes nothing.
func (r *Recorder) SaveGIF(path string) error {
	if len(r.frames) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
