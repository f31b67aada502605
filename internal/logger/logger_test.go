package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestNewLogger_Environments(t *testing.T) {
	for _, env := range []string{"prod", "local", "dev", "docker"} {
		if _, err := NewLogger(env); err != nil {
			t.Errorf("NewLogger(%q): %v", env, err)
		}
	}
	if _, err := NewLogger("staging"); err == nil {
		t.Error("unknown environment accepted")
	}
}

func TestNewLogger_LevelOverride(t *testing.T) {
	if _, err := NewLogger("prod", "debug"); err != nil {
		t.Errorf("debug override: %v", err)
	}
	if _, err := NewLogger("prod", "loud"); err == nil {
		t.Error("invalid level accepted")
	}
}

func TestFromContext(t *testing.T) {
	base := zap.NewNop()
	if got := FromContext(ContextWithLogger(context.Background(), base)); got != base {
		t.Error("stored logger not returned")
	}
	if FromContext(context.Background()) == nil {
		t.Error("expected nop fallback, got nil")
	}
}
