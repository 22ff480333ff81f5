package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name       string
		debug      bool
		debugLevel bool
	}{
		{"production logger skips debug", false, false},
		{"development logger emits debug", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.debug)
			if err != nil {
				t.Fatalf("New(%v) returned error: %v", tt.debug, err)
			}
			if got := l.Core().Enabled(zapcore.DebugLevel); got != tt.debugLevel {
				t.Errorf("debug enabled = %v, want %v", got, tt.debugLevel)
			}
		})
	}
}

func TestInstallRestoresGlobals(t *testing.T) {
	before := zap.L()

	l, err := New(false)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	restore := Install(l)
	if zap.L() != l {
		t.Error("expected installed logger to be global")
	}

	restore()
	if zap.L() != before {
		t.Error("expected previous global logger after restore")
	}
}
