// Package export writes frame-time data in formats other tools can open.
package export

import (
	"fmt"
	"image"
	"strings"

	"github.com/san-kum/gfx/internal/graph"
)

// GraphSVG renders the frame-time graph as an SVG document of the given size.
// The polyline uses the same layout as the on-canvas graph, so the two match
// point for point.
func GraphSVG(h *graph.History, width, height, margin int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	area := image.Rect(0, 0, width-1, height-1)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#000000"/>
<rect x="0" y="0" width="%d" height="%d" fill="none" stroke="#ffffff" stroke-width="1"/>
`, width, height, width, height, area.Dx(), area.Dy()))

	pts := graph.Points(area, h, margin)
	if len(pts) >= 2 {
		sb.WriteString(`<path fill="none" stroke="#ffffff" stroke-width="1" d="M`)
		for i, p := range pts {
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%d,%d", p.X, p.Y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%d,%d", p.X, p.Y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
