// SPDX-License-Identifier: EPL-2.0

// Package ui implements the terminal view: a playhead progress line and
// the spectrum column under it.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ik5/phonolyze/position"
	"github.com/ik5/phonolyze/spectrum"
	"github.com/ik5/phonolyze/stream"
)

const tickInterval = 50 * time.Millisecond

type tickMsg time.Time

// Status is the part of the player the view reads. output.Session
// implements it.
type Status interface {
	State() stream.State
}

// Analysis is the precomputed spectrum the view walks through.
type Analysis struct {
	Matrix     spectrum.Matrix
	WindowSize int
	HopSize    int
	SampleRate int
}

// frameAt returns the matrix row covering second sec, or nil.
func (a Analysis) frameAt(sec float64) []float32 {
	if len(a.Matrix) == 0 || a.HopSize <= 0 {
		return nil
	}

	i := int(sec * float64(a.SampleRate) / float64(a.HopSize))
	i = max(0, min(i, len(a.Matrix)-1))

	return a.Matrix[i]
}

// Model is the bubbletea model.
type Model struct {
	title    string
	tracker  *position.Tracker
	status   Status
	analysis Analysis
	now      func() time.Time

	pos      float64
	length   float64
	state    stream.State
	width    int
	quitting bool
}

// NewModel shows title and reads the playhead from tracker. status may be
// nil when there is no output device.
func NewModel(title string, tracker *position.Tracker, status Status, a Analysis) Model {
	return Model{
		title:    title,
		tracker:  tracker,
		status:   status,
		analysis: a,
		now:      time.Now,
		width:    panelWidth,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), tea.WindowSize())
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = max(minWidth, min(msg.Width-frameOverhead, panelWidth))

	case tickMsg:
		m.sample()
		return m, tickCmd()
	}

	return m, nil
}

// sample reads the tracker. An idle player holds its last position
// instead of running ahead with the clock.
func (m *Model) sample() {
	if m.status != nil {
		m.state = m.status.State()
	}
	if m.tracker == nil {
		return
	}

	snap := m.tracker.Snapshot()
	m.length = snap.MusicLength
	if m.status == nil || m.state == stream.Idle {
		m.pos = max(0, snap.MusicPosition)
		if m.length > 0 {
			m.pos = min(m.pos, m.length)
		}
		return
	}

	m.pos = snap.Clamped(m.now())
}
