// Command ryulog analyzes Ryujinx emulator logs and reports likely
// problems with the user's setup.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	// root flags
	verbose    bool
	configPath string

	// cfg holds values from --config, applied to flags the user did not set.
	cfg *fileConfig

	// logger is built in PersistentPreRunE once --verbose is known.
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
)

var rootCmd = &cobra.Command{
	Use:   "ryulog",
	Short: "Analyze Ryujinx emulator logs",
	Long: `Analyze Ryujinx emulator logs and list likely problems with the setup.

A report covers the hardware, emulator version and firmware, the loaded
game and mods, the key emulator settings, the last logged error and a
list of notes ranked by severity.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

		loaded, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		return applyConfig(cmd, cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log debug details to stderr")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"YAML config file with default flag values")
}

func main() {
	registerFlagCompletions()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
