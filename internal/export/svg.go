// Package export writes rendered particle views to files.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/sphpost/internal/viz"
)

// CanvasToSVG draws every lit braille dot as a circle. scale is the size of
// one dot in SVG units.
func CanvasToSVG(canvas *viz.Canvas, scale float64, title string) string {
	if canvas == nil {
		return ""
	}
	w := float64(canvas.DotsWide()) * scale
	h := float64(canvas.DotsHigh()) * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
`, w, h, w, h)
	if title != "" {
		fmt.Fprintf(&sb, "<title>%s</title>\n", escape(title))
	}
	sb.WriteString(`<rect width="100%" height="100%" fill="#0a0a0a"/>
<g fill="#00ff88">
`)

	r := scale * 0.4
	for y := 0; y < canvas.DotsHigh(); y++ {
		for x := 0; x < canvas.DotsWide(); x++ {
			if !canvas.Lit(x, y) {
				continue
			}
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
				(float64(x)+0.5)*scale, (float64(y)+0.5)*scale, r)
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// WriteSVG renders the canvas to path, creating its directory.
func WriteSVG(path string, canvas *viz.Canvas, scale float64, title string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(f, CanvasToSVG(canvas, scale, title)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func escape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}
