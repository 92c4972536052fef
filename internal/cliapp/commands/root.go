// Package commands implements seqparse's CLI commands, grounded on
// dittofs's cmd/dittofs/commands package: a package-level rootCmd, a
// persistent --config flag, and an Execute entry point main.go calls once.
package commands

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time via -ldflags.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "seqparse",
	Short: "seqparse - a DFDL-style sequence combinator parser",
	Long: `seqparse parses fixed-width binary records against a declarative
sequence schema: ordered and unordered groups, required and optional
scalars, and bounded or unbounded repeating fields, using speculative
points of uncertainty to backtrack out of an optional child that turns
out absent.

Use "seqparse [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called once by main.main.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (when unset, no config file is read)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(parseCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// GetConfigFile returns the --config flag value.
func GetConfigFile() string {
	return cfgFile
}

// PrintErr prints a message to stderr through the root command.
func PrintErr(format string, args ...any) {
	rootCmd.PrintErrf(format+"\n", args...)
}

// Exit prints an error and exits with code 1.
func Exit(format string, args ...any) {
	PrintErr(format, args...)
	os.Exit(1)
}
