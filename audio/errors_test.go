// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"testing"
)

func TestTransient(t *testing.T) {
	t.Parallel()

	base := errors.New("bad crc")
	err := Transient(base)

	if !IsTransient(err) {
		t.Error("IsTransient(Transient(err)) = false, want true")
	}
	if !errors.Is(err, base) {
		t.Error("Transient() lost the wrapped error")
	}
	if IsTransient(base) {
		t.Error("IsTransient(plain error) = true, want false")
	}
	if Transient(nil) != nil {
		t.Error("Transient(nil) != nil")
	}
}
