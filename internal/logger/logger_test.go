package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name          string
		logLevel      string
		dev           bool
		logFormat     string
		expectedLevel logrus.Level
		expectJSON    bool
	}{
		{"production default", "", false, "", logrus.InfoLevel, true},
		{"development default", "", true, "", logrus.DebugLevel, false},
		{"development forced json", "warn", true, "json", logrus.WarnLevel, true},
		{"invalid level", "loud", false, "", logrus.InfoLevel, true},
		{"case insensitive", "ERROR", true, "", logrus.ErrorLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", "")
			t.Setenv("LOG_FORMAT", tt.logFormat)
			Logger = nil

			log := InitLogger(tt.logLevel, tt.dev)
			assert.Equal(t, tt.expectedLevel, log.GetLevel())
			_, isJSON := log.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.expectJSON, isJSON)
			assert.Same(t, log, GetLogger())
		})
	}
}

func TestWithSessionFields(t *testing.T) {
	Logger = nil
	log := InitLogger("debug", false)
	var buf bytes.Buffer
	log.SetOutput(&buf)

	WithSession("s-1").WithField("play_id", "p-9").Info("resolved")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "s-1", entry["session_id"])
	assert.Equal(t, "p-9", entry["play_id"])
	assert.Equal(t, "resolved", entry["msg"])
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() { Discard().WithField("k", 1).Error("dropped") })
}
