package logger

import (
	"testing"

	"orcafacil/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zap.DebugLevel,
		" WARN ":  zap.WarnLevel,
		"warning": zap.WarnLevel,
		"error":   zap.ErrorLevel,
		"info":    zap.InfoLevel,
		"":        zap.InfoLevel,
		"verbose": zap.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		t.Run(format, func(t *testing.T) {
			l, err := New(config.LogConfig{Level: "warn", Format: format})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if l.Core().Enabled(zap.InfoLevel) {
				t.Fatalf("info should be disabled at warn level")
			}
			if !l.Core().Enabled(zap.WarnLevel) {
				t.Fatalf("warn should be enabled")
			}
		})
	}
}
