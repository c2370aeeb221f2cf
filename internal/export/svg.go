package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/touchgrid/internal/grid"
	"github.com/san-kum/touchgrid/internal/viz"
)

// FrameToSVG draws the frame's cells using the same geometry as the window
// sink: square cells, padded fills, centered 2-decimal labels.
func FrameToSVG(f *grid.Frame, width, height int) string {
	if f == nil {
		return ""
	}
	geom := grid.NewGeometry(float64(width), float64(height))
	fontSize := geom.CellSize / 6

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, out := range f.Cells {
		r := geom.Fill(out.Cell)
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, r.X, r.Y, r.W, r.H, viz.Hex(out.Color)))

		cx, cy := geom.Bounds(out.Cell).Center()
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-family="monospace" font-size="%.1f" fill="#ffffff" text-anchor="middle" dominant-baseline="middle">%s</text>
`, cx, cy, fontSize, out.Label))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func WriteFrameSVG(path string, f *grid.Frame, width, height int) error {
	if f == nil {
		return fmt.Errorf("export: no frame to write")
	}
	if err := os.WriteFile(path, []byte(FrameToSVG(f, width, height)), 0644); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}
