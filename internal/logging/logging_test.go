package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, debug := range []bool{false, true} {
		l, err := New(debug)
		if err != nil {
			t.Fatalf("New(%v) error: %v", debug, err)
		}
		if l == nil {
			t.Fatalf("New(%v) returned nil logger", debug)
		}
	}
}

func TestComponent(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := zap.New(core)

	Component(l, AEx).Info("worker output")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].LoggerName != AEx {
		t.Errorf("Expected logger name '%s', got '%s'", AEx, entries[0].LoggerName)
	}

	// nil parent must not panic
	Component(nil, Landing).Info("ignored")
}
