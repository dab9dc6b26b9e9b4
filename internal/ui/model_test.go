// SPDX-License-Identifier: EPL-2.0

package ui

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ik5/phonolyze/position"
	"github.com/ik5/phonolyze/spectrum"
	"github.com/ik5/phonolyze/stream"
)

type fixedStatus stream.State

func (s fixedStatus) State() stream.State { return stream.State(s) }

func testModel(state stream.State, publishedAt time.Time, pos, length float64) Model {
	tr := position.NewTracker()
	tr.Publish(publishedAt, pos, pos+10)
	tr.SetLength(length)

	m := NewModel("test.wav", tr, fixedStatus(state), Analysis{
		Matrix:     spectrum.Matrix{{0, -10, -20}, {-200, -200, 0}},
		WindowSize: 4,
		HopSize:    4,
		SampleRate: 4,
	})
	m.now = func() time.Time { return publishedAt.Add(1500 * time.Millisecond) }

	return m
}

func TestModel_TickExtrapolatesWhilePlaying(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	m := testModel(stream.Loading, at, 61, 125)

	next, cmd := m.Update(tickMsg(at))
	if cmd == nil {
		t.Error("tick returned no follow-up command")
	}

	got := next.(Model)
	if math.Abs(got.pos-62.5) > 1e-9 {
		t.Errorf("pos = %v, want 62.5", got.pos)
	}
	if view := got.View(); !strings.Contains(view, "01:02 / 02:05") {
		t.Errorf("View() missing time line:\n%s", view)
	}
}

func TestModel_TickHoldsWhenIdle(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	m := testModel(stream.Idle, at, 3, 10)

	next, _ := m.Update(tickMsg(at))
	if got := next.(Model).pos; got != 3 {
		t.Errorf("pos = %v, want 3", got)
	}
}

func TestModel_ClampsToLength(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	m := testModel(stream.Draining, at, 9.9, 10)

	next, _ := m.Update(tickMsg(at))
	if got := next.(Model).pos; got != 10 {
		t.Errorf("pos = %v, want 10", got)
	}
}

func TestModel_Quit(t *testing.T) {
	t.Parallel()

	keys := []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyCtrlC},
	}

	for _, k := range keys {
		m := NewModel("x", nil, nil, Analysis{})
		next, cmd := m.Update(k)
		if cmd == nil {
			t.Errorf("%q: no quit command", k.String())
		}
		if v := next.(Model).View(); v != "" {
			t.Errorf("%q: View() = %q after quit, want empty", k.String(), v)
		}
	}
}

func TestModel_WindowSize(t *testing.T) {
	t.Parallel()

	m := NewModel("x", nil, nil, Analysis{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	if got := next.(Model).width; got != 34 {
		t.Errorf("width = %d, want 34", got)
	}

	next, _ = m.Update(tea.WindowSizeMsg{Width: 500, Height: 20})
	if got := next.(Model).width; got != panelWidth {
		t.Errorf("width = %d, want %d", got, panelWidth)
	}
}

func TestAnalysis_FrameAt(t *testing.T) {
	t.Parallel()

	a := Analysis{Matrix: spectrum.Matrix{{1}, {2}, {3}}, HopSize: 100, SampleRate: 100}

	tests := []struct {
		sec  float64
		want float32
	}{
		{0, 1},
		{1.5, 2},
		{2, 3},
		{99, 3},
		{-1, 1},
	}

	for _, tt := range tests {
		if got := a.frameAt(tt.sec); got[0] != tt.want {
			t.Errorf("frameAt(%v) = %v, want %v", tt.sec, got[0], tt.want)
		}
	}

	if got := (Analysis{}).frameAt(1); got != nil {
		t.Errorf("empty frameAt() = %v, want nil", got)
	}
}

func TestBands(t *testing.T) {
	t.Parallel()

	frame := []float32{0, -90, -90, -90, -90, -90, -90, 0}
	got := bands(frame, 3)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0] != 0 {
		t.Errorf("first band = %v, want 0", got[0])
	}
	if got[2] != 1 {
		t.Errorf("last band = %v, want 1", got[2])
	}

	if got := bands(nil, 4); len(got) != 4 || got[0] != 0 {
		t.Errorf("bands(nil) = %v, want four zeros", got)
	}
}

func TestClock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sec  float64
		want string
	}{
		{0, "00:00"},
		{59.9, "00:59"},
		{61, "01:01"},
		{3600, "60:00"},
	}

	for _, tt := range tests {
		if got := clock(tt.sec); got != tt.want {
			t.Errorf("clock(%v) = %q, want %q", tt.sec, got, tt.want)
		}
	}
}
