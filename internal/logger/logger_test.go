package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSetLevel(t *testing.T) {
	l := New()

	tests := []struct {
		name     string
		expected logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"verbose", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l.SetLevel(tt.name)
			assert.Equal(t, tt.expected, l.GetLevel())
		})
	}
}

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer

	l := NewWithWriter(&buf)
	l.WithField("intent", "addToTarget").Info("dispatched")
	l.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "intent=addToTarget")
	assert.Contains(t, out, "dispatched")
	assert.NotContains(t, out, "hidden")
}

func TestDiscard(t *testing.T) {
	l := Discard()
	assert.False(t, l.IsLevelEnabled(logrus.ErrorLevel))
}
