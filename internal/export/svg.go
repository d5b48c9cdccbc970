// Package export renders run artifacts into portable formats.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/sphstep/internal/particles"
	"github.com/san-kum/sphstep/internal/viz"
)

var groupPalette = []string{"#00a8cc", "#ff6b6b", "#5fd068", "#feca57", "#ff9ff3"}

// CanvasToSVG renders every lit dot of a braille canvas as a circle.
// scale is the dot pitch in SVG units.
func CanvasToSVG(c *viz.Canvas, scale float64) string {
	if c == nil {
		return ""
	}
	pw, ph := c.PixelSize()
	width, height := float64(pw)*scale, float64(ph)*scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00a8cc">
`, width, height, width, height))

	r := scale * 0.4
	for py := 0; py < ph; py++ {
		for px := 0; px < pw; px++ {
			if !c.DotAt(px, py) {
				continue
			}
			cx := (float64(px) + 0.5) * scale
			cy := (float64(py) + 0.5) * scale
			sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, r))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// ParticlesToSVG renders group positions as a scatter plot, one color
// per group. Groups without position fields are skipped; returns the
// empty string when nothing can be drawn.
func ParticlesToSVG(groups []*particles.Group, width, height int) string {
	first := true
	var minX, maxX, minY, maxY float64
	for _, g := range groups {
		x, y := g.Field("x"), g.Field("y")
		if x == nil || y == nil {
			continue
		}
		for i := range x {
			if first {
				minX, maxX, minY, maxY = x[i], x[i], y[i], y[i]
				first = false
				continue
			}
			if x[i] < minX {
				minX = x[i]
			}
			if x[i] > maxX {
				maxX = x[i]
			}
			if y[i] < minY {
				minY = y[i]
			}
			if y[i] > maxY {
				maxY = y[i]
			}
		}
	}
	if first {
		return ""
	}

	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX, rangeY = maxX-minX, maxY-minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for gi, g := range groups {
		x, y := g.Field("x"), g.Field("y")
		if x == nil || y == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("<g fill=%q>\n", groupPalette[gi%len(groupPalette)]))
		for i := range x {
			px := (x[i] - minX) / rangeX * float64(width)
			py := float64(height) - (y[i]-minY)/rangeY*float64(height)
			sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"2\"/>\n", px, py))
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
