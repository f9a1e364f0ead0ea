package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/funzone/internal/logger"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logger.Level
	}{
		{"debug", logger.DEBUG},
		{"INFO", logger.INFO},
		{"warning", logger.WARN},
		{"Error", logger.ERROR},
		{"nonsense", logger.INFO},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.ParseLevel(tt.in))
		})
	}
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.WARN), logger.WithColors(false))

	log.Info("hidden")
	log.Warn("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 1")
	assert.Contains(t, out, "WARN")
}

func TestLogger_FieldsAreSorted(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false)).
		WithFields(map[string]any{"zeta": 1, "alpha": 2}).
		WithPrefix("games")

	log.Info("tick")

	line := buf.String()
	assert.Contains(t, line, "[games]")
	assert.Less(t, strings.Index(line, "alpha=2"), strings.Index(line, "zeta=1"))
}

func TestLogger_WithError(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false))

	log.WithError(errors.New("boom")).Error("store failed")
	log.WithError(nil).Info("no error field")

	out := buf.String()
	assert.Contains(t, out, "error=boom")
	assert.Equal(t, 1, strings.Count(out, "error="))
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))

	custom := logger.New()
	ctx := logger.NewContext(context.Background(), custom)
	assert.Same(t, custom, logger.FromContext(ctx))
}

func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithFormat(logger.FormatJSON)).
		WithPrefix("contact").
		WithFields(map[string]any{"visitor_id": "v1", "msg": "shadowed"})

	log.Info("sent %d", 1)

	var got map[string]any
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "INFO", got["level"])
	assert.Equal(t, "sent 1", got["msg"])
	assert.Equal(t, "contact", got["component"])
	assert.Equal(t, "v1", got["visitor_id"])
	assert.Contains(t, got["caller"], "logger_test.go")
	assert.NotContains(t, buf.String(), "\033[")
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, logger.FormatJSON, logger.ParseFormat(" JSON "))
	assert.Equal(t, logger.FormatText, logger.ParseFormat("text"))
	assert.Equal(t, logger.FormatText, logger.ParseFormat(""))
}
