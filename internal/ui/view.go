// SPDX-License-Identifier: EPL-2.0

package ui

import (
	"fmt"
	"strings"
)

const (
	panelWidth    = 64
	minWidth      = 24
	frameOverhead = 6 // border and padding
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		titleStyle.Render(m.title),
		m.renderTime(),
		"",
		renderColumn(bands(m.analysis.frameAt(m.pos), m.width)),
		m.renderSeekBar(),
		"",
		dimStyle.Render("q quit"),
	}

	return frameStyle.Render(strings.Join(sections, "\n"))
}

func (m Model) renderTime() string {
	t := fmt.Sprintf("%s / %s", clock(m.pos), clock(m.length))
	return timeStyle.Render(t) + "  " + stateStyle.Render(m.state.String())
}

func (m Model) renderSeekBar() string {
	filled := 0
	if m.length > 0 {
		filled = int(m.pos / m.length * float64(m.width))
		filled = max(0, min(filled, m.width))
	}

	return fillStyle.Render(strings.Repeat("━", filled)) +
		dimStyle.Render(strings.Repeat("─", m.width-filled))
}

// clock formats seconds as mm:ss.
func clock(sec float64) string {
	s := int(sec)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}
