package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestSlog(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestSlogAdapterSuccess(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(newTestSlog(&buf))

	adapter.Log(Event{
		Operation:      OperationRead,
		Characteristic: "Carbon Dioxide Level",
		Type:           "00000093-0000-1000-8000-0026bb765291",
		Value:          42.0,
		Duration:       2 * time.Millisecond,
	})

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "operation=READ")
	assert.Contains(t, out, `characteristic="Carbon Dioxide Level"`)
	assert.Contains(t, out, "value=42")
	assert.Contains(t, out, "duration=2ms")
	assert.NotContains(t, out, "error=")
}

func TestSlogAdapterFailure(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(newTestSlog(&buf))

	adapter.Log(Event{Operation: OperationWrite, Characteristic: "Active", Error: "characteristic is not writable"})

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.True(t, strings.Contains(out, `error="characteristic is not writable"`), out)
}

func TestSlogAdapterReplaced(t *testing.T) {
	var buf bytes.Buffer
	NewSlogAdapter(newTestSlog(&buf)).Log(Event{Operation: OperationSubscribe, Characteristic: "Air Quality", Replaced: true})
	assert.Contains(t, buf.String(), "replaced=true")
}
