package snapshot

import (
	"testing"

	"hoststatus/internal/status"
)

func TestStatusStore(t *testing.T) {
	s := NewStatusStore()

	if _, ok := s.Get(); ok {
		t.Fatal("empty store reported a value")
	}

	snap := status.Snapshot{LoadAvg: status.Result[status.LoadAverage]{Value: status.LoadAverage{OneMin: "0.5"}}}
	s.Set(snap)

	got, ok := s.Get()
	if !ok {
		t.Fatal("Get() ok = false after Set")
	}
	if got.LoadAvg.Value.OneMin != "0.5" {
		t.Errorf("loadavg = %+v", got.LoadAvg.Value)
	}
	if s.UpdatedAt().IsZero() {
		t.Error("UpdatedAt not set")
	}
}
