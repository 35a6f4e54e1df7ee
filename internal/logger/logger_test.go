package logger

import (
	"testing"

	"go.uber.org/zap"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		level      string
		wantErr    bool
	}{
		{name: "JSON output mode", jsonOutput: true, level: "info"},
		{name: "Console output mode", jsonOutput: false},
		{name: "Debug level", jsonOutput: true, level: "debug"},
		{name: "Unknown level", jsonOutput: false, level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = zap.NewNop().Sugar()
			JSONOutput = false

			err := Initialize(tt.jsonOutput, tt.level)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Initialize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if Logger == nil {
				t.Fatalf("Initialize() did not set global Logger")
			}
			if JSONOutput != tt.jsonOutput {
				t.Fatalf("Initialize() JSONOutput = %v, want %v", JSONOutput, tt.jsonOutput)
			}
			if Named("test") == nil {
				t.Fatalf("Named returned nil")
			}
		})
	}
	Logger = zap.NewNop().Sugar()
}

func TestDefaultLoggerIsSafe(t *testing.T) {
	Logger = zap.NewNop().Sugar()
	Logger.Infow("no panic before Initialize", "key", "value")
	Sync()
}
