package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagCommand() (*cobra.Command, *string, *string, *int, *[]string) {
	var channel, format string
	var jobs int
	var sigs []string
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&channel, "channel", "other", "")
	cmd.Flags().StringVar(&format, "format", "pretty", "")
	cmd.Flags().IntVar(&jobs, "jobs", 1, "")
	cmd.Flags().StringSliceVar(&sigs, "signatures", nil, "")
	return cmd, &channel, &format, &jobs, &sigs
}

func TestLoadConfig_Empty(t *testing.T) {
	c, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, &fileConfig{}, c)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ryulog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`channel: general
format: markdown
log_dir: /tmp/logs
jobs: 3
signatures:
  - a.yaml
  - b.yaml
`), 0644))

	c, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, &fileConfig{
		Channel:    "general",
		Format:     "markdown",
		LogDir:     "/tmp/logs",
		Jobs:       3,
		Signatures: []string{"a.yaml", "b.yaml"},
	}, c)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown field", "colour: blue\n"},
		{"bad type", "jobs: many\n"},
		{"negative jobs", "jobs: -2\n"},
		{"too large", "channel: general\n" + strings.Repeat("#", maxConfigSize)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "ryulog.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0644))
			_, err := loadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParseConfig_EmptyDocument(t *testing.T) {
	c, err := parseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, &fileConfig{}, c)
}

func TestApplyConfig_DefaultsOnly(t *testing.T) {
	cmd, channel, format, jobs, sigs := newFlagCommand()
	require.NoError(t, applyConfig(cmd, &fileConfig{
		Channel:    "general",
		Format:     "json",
		LogDir:     "/ignored/without/flag",
		Jobs:       8,
		Signatures: []string{"a.yaml", "b.yaml"},
	}))

	assert.Equal(t, "general", *channel)
	assert.Equal(t, "json", *format)
	assert.Equal(t, 8, *jobs)
	assert.Equal(t, []string{"a.yaml", "b.yaml"}, *sigs)
}

func TestApplyConfig_FlagsWin(t *testing.T) {
	cmd, channel, format, _, sigs := newFlagCommand()
	require.NoError(t, cmd.Flags().Parse([]string{"--channel", "pr-testing", "--signatures", "cli.yaml"}))

	require.NoError(t, applyConfig(cmd, &fileConfig{
		Channel:    "general",
		Format:     "json",
		Signatures: []string{"a.yaml"},
	}))

	assert.Equal(t, "pr-testing", *channel)
	assert.Equal(t, "json", *format)
	assert.Equal(t, []string{"cli.yaml"}, *sigs)
}

func TestApplyConfig_BadValue(t *testing.T) {
	cmd, _, _, _, _ := newFlagCommand()
	err := applyConfig(cmd, &fileConfig{Jobs: 2})
	require.NoError(t, err)

	cmd = &cobra.Command{Use: "test"}
	var n int
	cmd.Flags().IntVar(&n, "format", 0, "")
	err = applyConfig(cmd, &fileConfig{Format: "json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config format")
}
