package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockStorePinger struct {
	err error
}

func (m *mockStorePinger) Ping(_ context.Context) error { return m.err }

type mockRankerInfo struct {
	enabled bool
}

func (m *mockRankerInfo) Enabled() bool { return m.enabled }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockStorePinger{}, &mockRankerInfo{enabled: true})
	st := svc.Check(context.Background())

	if !st.Healthy {
		t.Error("expected healthy")
	}
	if st.Store != "ok" {
		t.Errorf("expected store ok, got %q", st.Store)
	}
	if !st.RankerEnabled {
		t.Error("expected ranker enabled")
	}
}

func TestCheck_StoreError(t *testing.T) {
	svc := New(&mockStorePinger{err: errors.New("conn refused")}, &mockRankerInfo{})
	st := svc.Check(context.Background())

	if st.Healthy {
		t.Error("expected unhealthy")
	}
	if st.Store != "conn refused" {
		t.Errorf("expected store error message, got %q", st.Store)
	}
}

func TestCheck_DisabledRankerIsHealthy(t *testing.T) {
	svc := New(&mockStorePinger{}, &mockRankerInfo{enabled: false})
	st := svc.Check(context.Background())

	if !st.Healthy {
		t.Error("disabled ranker must not degrade health")
	}
	if st.RankerEnabled {
		t.Error("expected ranker disabled")
	}
}

func TestCheck_NoRanker(t *testing.T) {
	svc := New(&mockStorePinger{}, nil)
	st := svc.Check(context.Background())

	if !st.Healthy {
		t.Error("expected healthy")
	}
	if st.RankerEnabled {
		t.Error("expected ranker disabled when absent")
	}
}
