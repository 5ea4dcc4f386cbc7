package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/Rushi8087/xerox-automation/internal/config"
)

func TestNewRespectsLevel(t *testing.T) {
	log := New(config.LogConfig{Level: "warn", Format: "json"})
	defer func() { _ = log.Sync() }()

	if log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
	if !log.Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn should be enabled at warn level")
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if got := parseLevel("verbose"); got != zapcore.InfoLevel {
		t.Errorf("parseLevel(verbose) = %v, want info", got)
	}
}
