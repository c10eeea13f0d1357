package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLoggerCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.hlog")

	logger, err := NewFileLogger(path)
	require.NoError(t, err)
	defer logger.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestFileLoggerAppendsAndReads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.hlog")

	logger, err := NewFileLogger(path)
	require.NoError(t, err)
	logger.Log(Event{Timestamp: time.Now(), Operation: OperationRead, Characteristic: "Carbon Dioxide Level", Value: 42.0})
	assert.Equal(t, 1, logger.Written())
	assert.Equal(t, path, logger.Path())
	require.NoError(t, logger.Close())

	// Reopen appends rather than truncates.
	logger, err = NewFileLogger(path)
	require.NoError(t, err)
	logger.Log(Event{Timestamp: time.Now(), Operation: OperationWrite, Characteristic: "Active", Error: "not writable"})
	require.NoError(t, logger.Close())

	r, err := NewReader(path)
	require.NoError(t, err)
	defer r.Close()

	first, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, OperationRead, first.Operation)
	assert.Equal(t, 42.0, first.Value)

	second, err := r.Next()
	require.NoError(t, err)
	assert.True(t, second.Failed())

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestFileLoggerCloseIdempotent(t *testing.T) {
	logger, err := NewFileLogger(filepath.Join(t.TempDir(), "test.hlog"))
	require.NoError(t, err)

	require.NoError(t, logger.Close())
	require.NoError(t, logger.Close())

	// Logging after close is ignored.
	logger.Log(Event{Operation: OperationRead})
	assert.Zero(t, logger.Written())
}

func TestFileLoggerKeepsFirstEncodingError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.hlog")
	logger, err := NewFileLogger(path)
	require.NoError(t, err)

	logger.Log(Event{Operation: OperationRead, Characteristic: "Active", Value: make(chan int)})
	logger.Log(Event{Operation: OperationWrite, Characteristic: "Rotation Speed", Value: func() {}})
	logger.Log(Event{Operation: OperationNotify, Characteristic: "Active", Value: uint64(1)})

	assert.Equal(t, 1, logger.Written())
	require.Error(t, logger.Err())
	assert.Contains(t, logger.Err().Error(), `READ event for "Active"`)
	require.NoError(t, logger.Close())

	r, err := NewReader(path)
	require.NoError(t, err)
	defer r.Close()

	e, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, OperationNotify, e.Operation)
	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestFileLoggerConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.hlog")
	logger, err := NewFileLogger(path)
	require.NoError(t, err)

	const writers, perWriter = 8, 25
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				logger.Log(Event{Operation: OperationNotify, Characteristic: fmt.Sprintf("c%d", w)})
			}
		}(w)
	}
	wg.Wait()
	require.NoError(t, logger.Close())

	r, err := NewReader(path)
	require.NoError(t, err)
	defer r.Close()

	count := 0
	for {
		_, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		count++
	}
	assert.Equal(t, writers*perWriter, count)
}

func TestNewFileLoggerBadPath(t *testing.T) {
	_, err := NewFileLogger(filepath.Join(t.TempDir(), "missing", "dir", "x.hlog"))
	assert.Error(t, err)
}
