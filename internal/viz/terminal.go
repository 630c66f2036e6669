package viz

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"

	"github.com/san-kum/gfx/internal/canvas"
)

const (
	DefaultCols = 96
	DefaultRows = 27

	halfBlock = "▀"
)

// Terminal is a render.Display that turns each frame into rows of
// half-block cells. It keeps only the last frame.
type Terminal struct {
	cols, rows int
	buf        *image.RGBA
	frame      string
}

func NewTerminal(cols, rows int) *Terminal {
	t := &Terminal{}
	t.Resize(cols, rows)
	return t
}

// Resize changes the cell grid. Each cell covers two source rows.
func (t *Terminal) Resize(cols, rows int) {
	cols, rows = max(1, cols), max(1, rows)
	if cols == t.cols && rows == t.rows {
		return
	}
	t.cols, t.rows = cols, rows
	t.buf = image.NewRGBA(image.Rect(0, 0, cols, rows*2))
}

func (t *Terminal) Size() (cols, rows int) { return t.cols, t.rows }

func (t *Terminal) Blit(pix []byte, width, height int) error {
	if width <= 0 || height <= 0 || len(pix) < width*height*canvas.BytesPerPixel {
		return fmt.Errorf("viz: %d bytes for a %dx%d frame", len(pix), width, height)
	}
	src := bgraImage{pix: pix, w: width, h: height}
	xdraw.ApproxBiLinear.Scale(t.buf, t.buf.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	var sb strings.Builder
	for row := 0; row < t.rows; row++ {
		for col := 0; col < t.cols; col++ {
			top, bottom := t.buf.RGBAAt(col, row*2), t.buf.RGBAAt(col, row*2+1)
			sb.WriteString(lipgloss.NewStyle().
				Foreground(cellColor(top)).
				Background(cellColor(bottom)).
				Render(halfBlock))
		}
		if row < t.rows-1 {
			sb.WriteByte('\n')
		}
	}
	t.frame = sb.String()
	return nil
}

func (t *Terminal) String() string { return t.frame }

func cellColor(c color.RGBA) lipgloss.Color {
	col, _ := colorful.MakeColor(c)
	return lipgloss.Color(col.Hex())
}

// bgraImage reads a BGRA8 pixel buffer without copying it.
type bgraImage struct {
	pix  []byte
	w, h int
}

func (b bgraImage) ColorModel() color.Model { return color.NRGBAModel }
func (b bgraImage) Bounds() image.Rectangle { return image.Rect(0, 0, b.w, b.h) }

func (b bgraImage) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return color.NRGBA{}
	}
	i := (y*b.w + x) * canvas.BytesPerPixel
	return color.NRGBA{R: b.pix[i+2], G: b.pix[i+1], B: b.pix[i], A: b.pix[i+3]}
}
