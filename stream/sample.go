// SPDX-License-Identifier: EPL-2.0

package stream

import "github.com/ik5/phonolyze/utils"

// Sample is a hardware sample representation.
type Sample interface {
	int8 | float32
}

// Converter returns the float to S conversion. The choice is made here,
// once, so per-sample code does not branch on the format.
func Converter[S Sample]() func(float32) S {
	var zero S
	switch any(zero).(type) {
	case int8:
		return func(v float32) S { return S(utils.Float32ToInt8(v)) }
	default:
		return func(v float32) S { return S(v) }
	}
}

// Kind tags an Item.
type Kind uint8

const (
	Silence Kind = iota
	Signal
	SetChannelCount
)

func (k Kind) String() string {
	switch k {
	case Silence:
		return "silence"
	case Signal:
		return "signal"
	case SetChannelCount:
		return "set-channel-count"
	default:
		return "unknown"
	}
}

// Item is one queue entry: a zero sample, a decoded sample, or a channel
// count change for the Signal items after it. Control and data share the
// queue because their relative order matters.
type Item[S Sample] struct {
	Kind     Kind
	Value    S
	Channels int
}

func SilenceItem[S Sample]() Item[S] { return Item[S]{Kind: Silence} }

func SignalItem[S Sample](v S) Item[S] { return Item[S]{Kind: Signal, Value: v} }

func ChannelCountItem[S Sample](n int) Item[S] {
	return Item[S]{Kind: SetChannelCount, Channels: n}
}
