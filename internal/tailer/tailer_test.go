package tailer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLine(t *testing.T, tr *Tailer) string {
	t.Helper()
	select {
	case line, ok := <-tr.Lines():
		require.True(t, ok, "lines channel closed")
		return line
	case err := <-tr.Errors():
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for line")
	}
	return ""
}

func TestTailer_FromStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Ryujinx_test.log")
	require.NoError(t, os.WriteFile(path, []byte("00:00:00.000 first\r\n00:00:00.001 second\n"), 0644))

	cfg := DefaultConfig()
	cfg.FromStart = true
	cfg.Poll = true
	tr, err := New(context.Background(), path, cfg)
	require.NoError(t, err)
	defer tr.Stop()

	assert.Equal(t, "00:00:00.000 first", readLine(t, tr))
	assert.Equal(t, "00:00:00.001 second", readLine(t, tr))
}

func TestTailer_FollowsAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Ryujinx_test.log")
	require.NoError(t, os.WriteFile(path, []byte("old line\n"), 0644))

	cfg := DefaultConfig()
	cfg.Poll = true
	tr, err := New(context.Background(), path, cfg)
	require.NoError(t, err)
	defer tr.Stop()

	// Give the tailer time to seek to the end before appending.
	time.Sleep(100 * time.Millisecond)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("new line\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.Equal(t, "new line", readLine(t, tr))
}

func TestTailer_MissingFile(t *testing.T) {
	_, err := New(context.Background(), filepath.Join(t.TempDir(), "missing.log"), DefaultConfig())
	assert.Error(t, err)
}

func TestTailer_StopClosesChannels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Ryujinx_test.log")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	cfg := DefaultConfig()
	cfg.Poll = true
	tr, err := New(context.Background(), path, cfg)
	require.NoError(t, err)

	require.NoError(t, tr.Stop())
	require.NoError(t, tr.Stop(), "second Stop must be a no-op")

	_, ok := <-tr.Lines()
	assert.False(t, ok)
	_, ok = <-tr.Errors()
	assert.False(t, ok)
}

func TestTailer_ContextCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Ryujinx_test.log")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	ctx, cancel := context.WithCancel(context.Background())
	cfg := DefaultConfig()
	cfg.Poll = true
	tr, err := New(ctx, path, cfg)
	require.NoError(t, err)
	defer tr.Stop()

	cancel()
	select {
	case _, ok := <-tr.Lines():
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("lines channel not closed after cancel")
	}
}
