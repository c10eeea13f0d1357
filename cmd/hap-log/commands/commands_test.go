package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hap-protocol/hap-go/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const speedType = "00000029-0000-1000-8000-0026bb765291"

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.hlog")
	logger, err := log.NewFileLogger(path)
	require.NoError(t, err)
	for _, e := range events {
		logger.Log(e)
	}
	require.NoError(t, logger.Close())
	return path
}

func sampleEvents() []log.Event {
	ts := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	return []log.Event{
		{Timestamp: ts, Operation: log.OperationRead, Characteristic: "Rotation Speed", Type: speedType, Value: 40.0, Duration: 2 * time.Millisecond},
		{Timestamp: ts.Add(time.Second), Operation: log.OperationWrite, Characteristic: "Rotation Speed", Type: speedType, Value: 150.0, Error: "invalid value"},
		{Timestamp: ts.Add(2 * time.Second), Operation: log.OperationSubscribe, Characteristic: "Current Fan State"},
		{Timestamp: ts.Add(3 * time.Second), Operation: log.OperationSubscribe, Characteristic: "Current Fan State", Replaced: true},
		{Timestamp: ts.Add(4 * time.Second), Operation: log.OperationNotify, Characteristic: "Current Fan State", Value: uint64(1)},
		{Timestamp: ts.Add(5 * time.Second), Operation: log.OperationRead, Characteristic: "Rotation Speed", Type: speedType, Value: 40.0, Duration: 4 * time.Millisecond},
	}
}

func TestRunView(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	var buf bytes.Buffer
	require.NoError(t, RunView(path, ViewFilter{}, &buf))

	out := buf.String()
	assert.Contains(t, out, "2026-01-28T10:00:00.000000Z READ        Rotation Speed (29)")
	assert.Contains(t, out, "  Value: 40")
	assert.Contains(t, out, "  Duration: 2.000ms")
	assert.Contains(t, out, "  Error: invalid value")
	assert.Contains(t, out, "  Replaced previous callback")
	assert.Contains(t, out, "NOTIFY      Current Fan State")
}

func TestRunViewFiltered(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	op := log.OperationNotify
	var buf bytes.Buffer
	require.NoError(t, RunView(path, ViewFilter{Operation: &op}, &buf))

	out := buf.String()
	assert.Contains(t, out, "NOTIFY")
	assert.NotContains(t, out, "READ")
	assert.NotContains(t, out, "SUBSCRIBE")
}

func TestRunViewMissingFile(t *testing.T) {
	err := RunView(filepath.Join(t.TempDir(), "missing.hlog"), ViewFilter{}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestShortenType(t *testing.T) {
	assert.Equal(t, "29", shortenType(speedType))
	assert.Equal(t, "B7", shortenType("000000B7-0000-1000-8000-0026BB765291"))
	assert.Equal(t, "custom", shortenType("custom"))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0.500us", formatDuration(500*time.Nanosecond))
	assert.Equal(t, "2.000ms", formatDuration(2*time.Millisecond))
	assert.Equal(t, "1.500s", formatDuration(1500*time.Millisecond))
}

func TestParseOperationFlag(t *testing.T) {
	op, err := ParseOperationFlag("notify")
	require.NoError(t, err)
	assert.Equal(t, log.OperationNotify, op)

	op, err = ParseOperationFlag("Write")
	require.NoError(t, err)
	assert.Equal(t, log.OperationWrite, op)

	_, err = ParseOperationFlag("invoke")
	assert.Error(t, err)
}

func TestExportJSONL(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "out.jsonl")

	require.NoError(t, RunExport(path, "jsonl", out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 6)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "READ", first["operation"])
	assert.Equal(t, "Rotation Speed", first["characteristic"])
	assert.Equal(t, 40.0, first["value"])
	assert.Equal(t, float64(2*time.Millisecond), first["duration_ns"])

	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "invalid value", second["error"])
}

func TestExportCSV(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, RunExport(path, "csv", out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "timestamp,operation,characteristic,type,value,error,duration_ns", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2026-01-28T10:00:00.000000Z,READ,Rotation Speed,"+speedType+",40,,2000000"))
}

func TestExportUnknownFormat(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	err := RunExport(path, "xml", filepath.Join(t.TempDir(), "out.xml"))
	assert.ErrorContains(t, err, "unknown format")
}

func TestRunFilter(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "filtered.hlog")

	n, err := RunFilter(path, FilterOptions{Output: out, Characteristic: "Rotation Speed"})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	reader, err := log.NewReader(out)
	require.NoError(t, err)
	defer reader.Close()
	for range 3 {
		e, err := reader.Next()
		require.NoError(t, err)
		assert.Equal(t, "Rotation Speed", e.Characteristic)
	}
}

func TestBuildFilter(t *testing.T) {
	f, err := BuildFilter(FilterOptions{
		Operation:  "read",
		TimeStart:  "2026-01-28T10:00:01Z",
		FailedOnly: true,
	})
	require.NoError(t, err)
	require.NotNil(t, f.Operation)
	assert.Equal(t, log.OperationRead, *f.Operation)
	require.NotNil(t, f.TimeStart)
	assert.Nil(t, f.TimeEnd)
	assert.True(t, f.FailedOnly)

	_, err = BuildFilter(FilterOptions{TimeEnd: "yesterday"})
	assert.ErrorContains(t, err, "time-end")

	_, err = BuildFilter(FilterOptions{Operation: "invoke"})
	assert.Error(t, err)

	f, err = BuildFilter(FilterOptions{Type: "RotationSpeed"})
	require.NoError(t, err)
	assert.Equal(t, "00000029-0000-1000-8000-0026bb765291", f.Type)

	f, err = BuildFilter(FilterOptions{Type: "000000B7-0000-1000-8000-0026BB765291"})
	require.NoError(t, err)
	assert.Equal(t, "000000b7-0000-1000-8000-0026bb765291", f.Type)

	_, err = BuildFilter(FilterOptions{Type: "Spin"})
	assert.ErrorContains(t, err, "invalid type")
}

func TestRunStats(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	var buf bytes.Buffer
	require.NoError(t, RunStats(path, &buf))

	out := buf.String()
	assert.Contains(t, out, "Total Events: 6")
	assert.Contains(t, out, "READ:        2")
	assert.Contains(t, out, "SUBSCRIBE:   2")
	assert.Contains(t, out, "Characteristics: 2")
	assert.Contains(t, out, "Rotation Speed: 3 events (read 2, write 1, notify 0)")
	assert.Contains(t, out, "Latency: mean 3.000ms, max 4.000ms")
	assert.Contains(t, out, "Errors: 1")
	assert.Contains(t, out, "Duration:   5s")
}

func TestRunStatsEmpty(t *testing.T) {
	path := createTestLogFile(t, nil)

	var buf bytes.Buffer
	require.NoError(t, RunStats(path, &buf))
	assert.Contains(t, buf.String(), "Total Events: 0")
	assert.NotContains(t, buf.String(), "Time Range")
}
