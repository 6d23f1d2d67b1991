// internal/report/plot.go
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/CodeMeister99/QML-Compare/internal/curves"
)

const (
	plotWidth  = 41
	plotHeight = 15

	classicalMark = '*'
	quantumMark   = 'o'
	overlapMark   = '#'
	chanceMark    = '.'
)

type plotSeries struct {
	Name  string
	Mark  rune
	Curve curves.Curve
}

// asciiPlot draws curves on the unit square. Rows are returned top first.
func asciiPlot(series []plotSeries, width, height int, diagonal bool) []string {
	if width < 2 {
		width = plotWidth
	}
	if height < 2 {
		height = plotHeight
	}
	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", width))
	}
	cell := func(x, y float64) (int, int, bool) {
		if math.IsNaN(x) || math.IsNaN(y) {
			return 0, 0, false
		}
		col := int(math.Round(clamp01(x) * float64(width-1)))
		row := int(math.Round((1 - clamp01(y)) * float64(height-1)))
		return row, col, true
	}

	if diagonal {
		for col := 0; col < width; col++ {
			x := float64(col) / float64(width-1)
			if row, c, ok := cell(x, x); ok {
				grid[row][c] = chanceMark
			}
		}
	}
	for _, s := range series {
		for _, p := range s.Curve {
			row, col, ok := cell(p.X, p.Y)
			if !ok {
				continue
			}
			switch existing := grid[row][col]; existing {
			case ' ', chanceMark, s.Mark:
				grid[row][col] = s.Mark
			default:
				grid[row][col] = overlapMark
			}
		}
	}

	lines := make([]string, 0, height+2)
	for r, runes := range grid {
		label := "    "
		switch r {
		case 0:
			label = "1.0 "
		case height / 2:
			label = "0.5 "
		case height - 1:
			label = "0.0 "
		}
		lines = append(lines, label+"|"+string(runes))
	}
	lines = append(lines, "    +"+strings.Repeat("-", width))
	axis := []rune(strings.Repeat(" ", width))
	copy(axis[0:], []rune("0.0"))
	mid := width/2 - 1
	copy(axis[mid:], []rune("0.5"))
	copy(axis[width-3:], []rune("1.0"))
	lines = append(lines, "     "+string(axis))
	return lines
}

func plotLegend(series []plotSeries, diagonal bool) string {
	parts := make([]string, 0, len(series)+2)
	for _, s := range series {
		parts = append(parts, fmt.Sprintf("%c %s", s.Mark, s.Name))
	}
	parts = append(parts, fmt.Sprintf("%c both", overlapMark))
	if diagonal {
		parts = append(parts, fmt.Sprintf("%c chance", chanceMark))
	}
	return strings.Join(parts, "   ")
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
