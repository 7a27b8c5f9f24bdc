package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

const mockLogLevel int8 = 0

// isolate resets the global logger for one test and restores it afterwards.
func isolate(t *testing.T) {
	t.Helper()
	origZap, origLogr := globalZapLogger, globalLogrLogger
	once = sync.Once{}
	globalZapLogger, globalLogrLogger = nil, nil
	t.Cleanup(func() {
		once = sync.Once{}
		if origLogr != nil {
			once.Do(func() {})
		}
		globalZapLogger, globalLogrLogger = origZap, origLogr
	})
}

func TestGetReturnsSameInstanceOnSubsequentCalls(t *testing.T) {
	logger1 := Get(mockLogLevel)
	logger2 := Get(mockLogLevel)
	require.NotNil(t, logger1)
	assert.Same(t, logger1, logger2)
}

func TestSetupWritesJSONToOutput(t *testing.T) {
	isolate(t)
	var buf bytes.Buffer

	log := Setup(Options{Level: -2, Output: zapcore.AddSync(&buf)})
	log.V(2).Info("handle pressed", TableKey, "people", "column", 1)
	Sync()

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	assert.Equal(t, "handle pressed", rec[MessageKey])
	assert.Equal(t, "people", rec[TableKey])
	assert.Contains(t, rec, TimeStampKey)
	assert.Contains(t, rec, CommitKey)
	assert.Contains(t, rec, GoVersionKey)
}

func TestSetupHonorsLevel(t *testing.T) {
	isolate(t)
	var buf bytes.Buffer

	log := Setup(Options{Level: 0, Output: zapcore.AddSync(&buf)})
	log.V(1).Info("hidden")
	Sync()

	assert.Empty(t, buf.String())
}

func TestOpenFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colresize.log")
	ws, closeFn, err := OpenFile(path)
	require.NoError(t, err)
	defer closeFn()

	_, err = ws.Write([]byte("line\n"))
	require.NoError(t, err)
	require.NoError(t, ws.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line\n", string(data))
}

func TestOpenFileMissingDirectory(t *testing.T) {
	_, _, err := OpenFile(filepath.Join(t.TempDir(), "missing", "x.log"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open log file")
}

func TestWithLogger(t *testing.T) {
	ctx := context.Background()
	logger := Get(mockLogLevel)

	withLogger := WithLogger(ctx, logger)
	assert.Same(t, logger, FromContext(withLogger))
	assert.Equal(t, withLogger, WithLogger(withLogger, logger), "same logger keeps the context")

	other := logr.Discard()
	replaced := WithLogger(withLogger, &other)
	assert.Same(t, &other, FromContext(replaced))
}

func TestFromContextFallbacks(t *testing.T) {
	global := Get(mockLogLevel)
	assert.Same(t, global, FromContext(context.Background()))

	orig := globalLogrLogger
	globalLogrLogger = nil
	defer func() { globalLogrLogger = orig }()
	assert.Same(t, &defaultNoopLogger, FromContext(context.Background()))
	assert.Same(t, &defaultNoopLogger, GetGlobalLogger())
}

func TestSyncWithoutLogger(t *testing.T) {
	orig := globalZapLogger
	globalZapLogger = nil
	defer func() { globalZapLogger = orig }()

	assert.NotPanics(t, Sync)
}

func TestIsIgnorableSyncError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "enotty", err: syscall.ENOTTY, want: true},
		{name: "wrapped einval", err: &os.PathError{Op: "sync", Path: "/dev/stderr", Err: syscall.EINVAL}, want: true},
		{name: "windows handle", err: errors.New("sync: The handle is invalid."), want: true},
		{name: "other", err: errors.New("disk full"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isIgnorableSyncError(tt.err))
		})
	}
}

func TestWithValuesReturnsNewLogger(t *testing.T) {
	logger := Get(mockLogLevel)
	newLogger := WithValues(logger, "key", "value")
	require.NotNil(t, newLogger)
	assert.NotSame(t, logger, newLogger)
	assert.NotSame(t, logger, WithValues(logger))
}

func TestGetNoopLoggerIsNoop(t *testing.T) {
	logger := GetNoopLogger()
	assert.Same(t, &defaultNoopLogger, logger)
	assert.NotPanics(t, func() { logger.Info("nothing") })
}
