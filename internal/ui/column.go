// SPDX-License-Identifier: EPL-2.0

package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ik5/phonolyze/spectrum"
)

// displayFloor is the quietest level drawn; spectrum.FloorDB is far below
// anything a terminal bar can show.
const displayFloor = -90

var barBlocks = []string{" ", "▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

// bands folds a dB frame into n log-spaced bands, taking the loudest bin
// of each. DC is skipped.
func bands(frame []float32, n int) []float32 {
	out := make([]float32, n)
	if len(frame) < 2 || n <= 0 {
		return out
	}

	lo, hi := 1.0, float64(len(frame))
	ratio := math.Pow(hi/lo, 1/float64(n))
	edge := lo
	for b := range out {
		next := edge * ratio
		from := int(edge)
		to := max(from+1, min(int(next), len(frame)))
		if b == n-1 {
			to = len(frame)
		}

		best := float32(math.Inf(-1))
		for _, v := range frame[from:to] {
			best = max(best, v)
		}
		out[b] = spectrum.Level(best, displayFloor)
		edge = next
	}

	return out
}

// renderColumn draws levels as one row of bars.
func renderColumn(levels []float32) string {
	var sb strings.Builder
	for _, level := range levels {
		idx := int(level * float32(len(barBlocks)-1))
		idx = max(0, min(idx, len(barBlocks)-1))

		var style lipgloss.Style
		switch {
		case level > 0.75:
			style = specHighStyle
		case level > 0.45:
			style = specMidStyle
		default:
			style = specLowStyle
		}
		sb.WriteString(style.Render(barBlocks[idx]))
	}

	return sb.String()
}
