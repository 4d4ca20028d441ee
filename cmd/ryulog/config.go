package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// maxConfigSize bounds the config file read.
const maxConfigSize = 64 * 1024

// fileConfig is the --config file. Every field is optional.
//
//	channel: general
//	format: pretty
//	log_dir: /home/me/.config/Ryujinx/Logs
//	jobs: 4
//	signatures:
//	  - ~/ryulog/extra.yaml
type fileConfig struct {
	Channel    string   `yaml:"channel"`
	Format     string   `yaml:"format"`
	LogDir     string   `yaml:"log_dir"`
	Jobs       int      `yaml:"jobs"`
	Signatures []string `yaml:"signatures"`
}

// loadConfig reads the config file at path. An empty path yields an
// empty config.
func loadConfig(path string) (*fileConfig, error) {
	if path == "" {
		return &fileConfig{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxConfigSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if len(data) > maxConfigSize {
		return nil, fmt.Errorf("config file too large (max %d bytes)", maxConfigSize)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (*fileConfig, error) {
	var c fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if c.Jobs < 0 {
		return nil, fmt.Errorf("parsing config: jobs must be non-negative, got %d", c.Jobs)
	}
	return &c, nil
}

// applyConfig copies config values onto the command's flags that were not
// set on the command line. Flags the command does not define are skipped.
func applyConfig(cmd *cobra.Command, c *fileConfig) error {
	flags := cmd.Flags()
	set := func(name, value string) error {
		f := flags.Lookup(name)
		if f == nil || f.Changed || value == "" {
			return nil
		}
		if err := f.Value.Set(value); err != nil {
			return fmt.Errorf("config %s: %w", name, err)
		}
		return nil
	}

	if err := set("channel", c.Channel); err != nil {
		return err
	}
	if err := set("format", c.Format); err != nil {
		return err
	}
	if err := set("log-dir", c.LogDir); err != nil {
		return err
	}
	if c.Jobs > 0 {
		if err := set("jobs", strconv.Itoa(c.Jobs)); err != nil {
			return err
		}
	}
	for _, path := range c.Signatures {
		if err := set("signatures", path); err != nil {
			return err
		}
	}
	return nil
}
