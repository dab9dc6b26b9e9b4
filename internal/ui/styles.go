// SPDX-License-Identifier: EPL-2.0

package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorBorder = lipgloss.ANSIColor(8)
	colorTitle  = lipgloss.ANSIColor(10)
	colorText   = lipgloss.ANSIColor(7)
	colorDim    = lipgloss.ANSIColor(8)
	colorAccent = lipgloss.ANSIColor(11)

	spectrumLow  = lipgloss.ANSIColor(10)
	spectrumMid  = lipgloss.ANSIColor(11)
	spectrumHigh = lipgloss.ANSIColor(9)
)

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorTitle).
			Bold(true)

	timeStyle  = lipgloss.NewStyle().Foreground(colorText)
	stateStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	fillStyle  = lipgloss.NewStyle().Foreground(colorAccent)
	dimStyle   = lipgloss.NewStyle().Foreground(colorDim)

	specLowStyle  = lipgloss.NewStyle().Foreground(spectrumLow)
	specMidStyle  = lipgloss.NewStyle().Foreground(spectrumMid)
	specHighStyle = lipgloss.NewStyle().Foreground(spectrumHigh)
)
