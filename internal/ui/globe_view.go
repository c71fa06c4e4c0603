package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-globeradio/internal/globe"
)

const (
	// cellAspect compensates for terminal cells being roughly twice as
	// tall as they are wide; hit-testing and rendering share it so the
	// pointer maps onto the same pixel space the markers project into.
	cellAspect = 2.0

	sidebarWidth = 34

	glyphOutline  = '·'
	glyphBeam     = '˙'
	glyphMarker   = '•'
	glyphHovered  = '◉'
	glyphSelected = '◆'
)

var (
	outlineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	beamStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	markerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	hoveredStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

// cell kinds, in paint order: later kinds overwrite earlier ones.
const (
	cellEmpty = iota
	cellOutline
	cellBeam
	cellMarker
	cellHovered
	cellSelected
)

// globePixel converts a cell coordinate in the globe pane to the pixel
// space used by the camera and the pickers.
func globePixel(cellX, cellY, cols, rows int) (px, py, w, h float64) {
	return float64(cellX) + 0.5, (float64(cellY) + 0.5) * cellAspect,
		float64(cols), float64(rows) * cellAspect
}

// renderGlobe draws the outline, beams and markers into a cell grid.
func (m Model) renderGlobe(cols, rows int) string {
	w := float64(cols)
	h := float64(rows) * cellAspect

	grid := make([][]int, rows)
	for i := range grid {
		grid[i] = make([]int, cols)
	}

	plot := func(x, y float64, kind int) {
		cx := int(math.Round(x - 0.5))
		cy := int(math.Round(y/cellAspect - 0.5))
		if cx < 0 || cx >= cols || cy < 0 || cy >= rows {
			return
		}
		if kind > grid[cy][cx] {
			grid[cy][cx] = kind
		}
	}

	cam := m.engine.Camera()

	// Globe silhouette: a circle of angular radius asin(R/D) around the
	// view axis.
	radius := globe.BaseRadius * m.engine.Scale()
	if d := cam.Distance(); radius < d {
		focal := (h / 2) / math.Tan(degToRad(cam.FOV())/2)
		rpx := focal * math.Tan(math.Asin(radius/d))
		for i := 0; i < 256; i++ {
			a := float64(i) / 256 * 2 * math.Pi
			plot(w/2+rpx*math.Cos(a), h/2+rpx*math.Sin(a), cellOutline)
		}
	}

	for _, mk := range m.engine.Markers() {
		if !mk.Beam.Degenerate {
			if x, y, visible := cam.ProjectToScreen(mk.Beam.Midpoint, w, h); visible {
				plot(x, y, cellBeam)
			}
		}

		x, y, visible := cam.ProjectToScreen(mk.Position, w, h)
		if !visible {
			continue
		}
		switch mk.Highlight {
		case globe.HighlightHovered:
			plot(x, y, cellHovered)
		case globe.HighlightSelected:
			plot(x, y, cellSelected)
		default:
			plot(x, y, cellMarker)
		}
	}

	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			switch grid[row][col] {
			case cellOutline:
				b.WriteString(outlineStyle.Render(string(glyphOutline)))
			case cellBeam:
				b.WriteString(beamStyle.Render(string(glyphBeam)))
			case cellMarker:
				b.WriteString(markerStyle.Render(string(glyphMarker)))
			case cellHovered:
				b.WriteString(hoveredStyle.Render(string(glyphHovered)))
			case cellSelected:
				b.WriteString(selectedStyle.Render(string(glyphSelected)))
			default:
				b.WriteByte(' ')
			}
		}
		if row < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
