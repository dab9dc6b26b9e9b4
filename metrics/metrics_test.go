// SPDX-License-Identifier: EPL-2.0

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters_Increment(t *testing.T) {
	before := testutil.ToFloat64(Underruns)
	Underruns.Inc()
	if got := testutil.ToFloat64(Underruns); got != before+1 {
		t.Errorf("Underruns = %v, want %v", got, before+1)
	}

	stage := DecodeErrors.WithLabelValues(StageOpen)
	before = testutil.ToFloat64(stage)
	stage.Inc()
	if got := testutil.ToFloat64(stage); got != before+1 {
		t.Errorf("DecodeErrors{open} = %v, want %v", got, before+1)
	}
}

func TestPlayerState_Set(t *testing.T) {
	PlayerState.Set(2)
	if got := testutil.ToFloat64(PlayerState); got != 2 {
		t.Errorf("PlayerState = %v, want 2", got)
	}
	PlayerState.Set(0)
}
