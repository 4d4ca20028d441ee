package safefile

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRegular(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Ryujinx_test.log")
	require.NoError(t, os.WriteFile(path, []byte("00:00:00.000 |I| start\n"), 0644))

	f, info, err := OpenRegular(path)
	require.NoError(t, err)
	defer f.Close()

	assert.True(t, info.Mode().IsRegular())
	assert.EqualValues(t, 23, info.Size())

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "00:00:00.000 |I| start\n", string(data))
}

func TestOpenRegular_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.log")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	f, info, err := OpenRegular(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Zero(t, info.Size())
}

func TestOpenRegular_NotExist(t *testing.T) {
	_, _, err := OpenRegular(filepath.Join(t.TempDir(), "missing.log"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestOpenRegular_Rejects(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.log")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0644))

	tests := []struct {
		name  string
		setup func(t *testing.T) string
	}{
		{"directory", func(t *testing.T) string { return dir }},
		{"symlink", func(t *testing.T) string {
			if runtime.GOOS == "windows" {
				t.Skip("symlink test requires Unix")
			}
			link := filepath.Join(dir, "link.log")
			require.NoError(t, os.Symlink(target, link))
			return link
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setup(t)
			_, _, err := OpenRegular(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrNotRegularFile)

			var pathErr *os.PathError
			require.ErrorAs(t, err, &pathErr)
			assert.Equal(t, path, pathErr.Path)
		})
	}
}
