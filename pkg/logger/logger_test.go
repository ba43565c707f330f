package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// TestParseLevel tests level name mapping and the info fallback.
func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected zerolog.Level
	}{
		{"debug", "debug", zerolog.DebugLevel},
		{"info", "info", zerolog.InfoLevel},
		{"warn", "warn", zerolog.WarnLevel},
		{"error", "error", zerolog.ErrorLevel},
		{"unrecognized falls back to info", "verbose", zerolog.InfoLevel},
		{"empty falls back to info", "", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.level))
		})
	}
}

// TestNewAppliesLevel tests that the configured level takes effect.
func TestNewAppliesLevel(t *testing.T) {
	New(Config{Level: "warn"})
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	New(Config{Level: "info"})
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
