package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ryulog/ryulog-go/pkg/ryulog/signature"
)

var signaturesCmd = &cobra.Command{
	Use:   "signatures",
	Short: "Inspect fault signatures",
}

var signaturesValidateCmd = &cobra.Command{
	Use:   "validate file...",
	Short: "Check signature files for errors",
	Long: `Load and compile each signature file and report problems.

Exits with a non-zero status when any file is invalid.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		var errs []error
		for _, path := range args {
			set, err := signature.NewSetFromFile(path)
			if err != nil {
				fmt.Fprintf(out, "FAIL %s: %v\n", path, err)
				errs = append(errs, fmt.Errorf("%s: %w", path, err))
				continue
			}
			fmt.Fprintf(out, "ok   %s: %d signatures\n", path, set.Len())
		}
		return errors.Join(errs...)
	},
}

var signaturesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in signatures",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, s := range signature.BuiltinSignatures() {
			if _, err := fmt.Fprintf(out, "%-24s %-8s %s\n", s.ID, s.Severity, s.Note); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	signaturesCmd.AddCommand(signaturesValidateCmd, signaturesListCmd)
	rootCmd.AddCommand(signaturesCmd)
}
