package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestDefaultLoggerIsSafe(t *testing.T) {
	// The package-level logger must be usable before Initialize.
	Infow("message before initialize", "key", "value")
	Warnw("warning before initialize")
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{0, zapcore.WarnLevel},
		{1, zapcore.InfoLevel},
		{2, zapcore.DebugLevel},
		{5, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		if got := VerbosityToLevel(tt.verbosity); got != tt.want {
			t.Errorf("VerbosityToLevel(%d) = %v, want %v", tt.verbosity, got, tt.want)
		}
	}
}

func TestInitialize(t *testing.T) {
	if err := Initialize(false, VerbosityInfo); err != nil {
		t.Fatalf("Initialize(console) failed: %v", err)
	}
	if JSONOutput {
		t.Fatal("JSONOutput should be false for console mode")
	}

	if err := Initialize(true, VerbosityUser); err != nil {
		t.Fatalf("Initialize(json) failed: %v", err)
	}
	if !JSONOutput {
		t.Fatal("JSONOutput should be true for JSON mode")
	}
	Cleanup()
}
