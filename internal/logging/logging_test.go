package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/vijay-prabhu/empscore/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LoggingConfig
		level   zapcore.Level
		wantErr bool
	}{
		{"default level", config.LoggingConfig{}, zapcore.InfoLevel, false},
		{"debug", config.LoggingConfig{Level: "debug"}, zapcore.DebugLevel, false},
		{"pretty warn", config.LoggingConfig{Level: "warn", Pretty: true}, zapcore.WarnLevel, false},
		{"invalid", config.LoggingConfig{Level: "loud"}, zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !l.Core().Enabled(tt.level) {
				t.Errorf("expected level %v enabled", tt.level)
			}
			if tt.level > zapcore.DebugLevel && l.Core().Enabled(tt.level-1) {
				t.Errorf("expected level %v disabled", tt.level-1)
			}
		})
	}
}
