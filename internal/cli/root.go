// Package cli provides Cobra-based CLI commands for go2opsin.
// It defines the user-facing commands: conversion (convert), configuration
// (config, doctor) and information (formats, version).
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/go2opsin/go2opsin/internal/cli/config"
	"github.com/go2opsin/go2opsin/internal/cli/conversion"
	"github.com/go2opsin/go2opsin/internal/cli/shared"
	"github.com/go2opsin/go2opsin/internal/cli/util"
	"github.com/spf13/cobra"
)

// Command group IDs for organizing help output (re-exported from shared)
const (
	GroupConversion    = shared.GroupConversion
	GroupConfiguration = shared.GroupConfiguration
	GroupInfo          = shared.GroupInfo
)

// NewRootCmd builds the go2opsin command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "go2opsin",
		Short: "Chemical names to structures via OPSIN",
		Long: `go2opsin converts chemical names to structures by running the OPSIN
command-line jar and mapping its output back onto the names you gave.

Java and the OPSIN jar must be installed; run 'go2opsin doctor' to check.`,
		Example: `  # Check Java and the OPSIN jar
  go2opsin doctor

  # Single name to SMILES
  go2opsin convert ethane

  # Several names to Standard InChIKey, as JSON
  go2opsin convert -f StdInChIKey water methane --output json

  # List output formats
  go2opsin formats`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	shared.AddGroups(rootCmd)
	rootCmd.SetHelpCommandGroupID(GroupInfo)
	rootCmd.SetCompletionCommandGroupID(GroupConfiguration)

	shared.AddGlobalFlags(rootCmd)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return shared.WithExitCode(shared.ExitInvalidArguments, err)
	})

	conversion.Register(rootCmd)
	config.Register(rootCmd)
	util.Register(rootCmd)
	return rootCmd
}

// Execute runs the root command and returns the process exit code. Errors
// are printed to stderr unless the command already reported them.
func Execute(ctx context.Context) int {
	err := NewRootCmd().ExecuteContext(ctx)
	if err != nil && !shared.Silent(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return ExitCode(err)
}
