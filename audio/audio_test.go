// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"slices"
	"testing"

	"github.com/ik5/phonolyze/internal/audiotest"
)

type stubDecoder struct {
	name string
}

func (d *stubDecoder) Decode(io.Reader) (Source, error) {
	return audiotest.NewSilentSource(44100, 2, 100), nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &stubDecoder{name: "wav"}
	registry.Register("wav", decoder)

	got, ok := registry.Get("wav")
	if !ok {
		t.Fatal("Registry.Get() failed to retrieve registered decoder")
	}
	if got != decoder {
		t.Error("Registry.Get() returned different decoder instance")
	}
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register("MP3", &stubDecoder{name: "mp3"})

	if _, ok := registry.Get("mp3"); !ok {
		t.Error("Registry.Get(\"mp3\") ok = false, want true")
	}
}

func TestRegistry_GetNonExistent(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	if _, ok := registry.Get("flac"); ok {
		t.Error("Registry.Get() returned ok=true for non-existent format")
	}
}

func TestRegistry_Formats(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	for _, f := range []string{"wav", "ogg", "aiff", "mp3"} {
		registry.Register(f, &stubDecoder{name: f})
	}

	got := registry.Formats()
	want := []string{"aiff", "mp3", "ogg", "wav"}
	if !slices.Equal(got, want) {
		t.Errorf("Registry.Formats() = %v, want %v", got, want)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	done := make(chan struct{})

	for i := range 8 {
		go func(i int) {
			defer func() { done <- struct{}{} }()
			registry.Register("wav", &stubDecoder{name: "wav"})
			registry.Get("wav")
			_ = i
		}(i)
	}
	for range 8 {
		<-done
	}

	if _, ok := registry.Get("wav"); !ok {
		t.Error("Registry.Get() ok = false after concurrent registration")
	}
}
