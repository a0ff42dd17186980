// Package cmd implements the command-line interface for namesift.
// It provides the root command and subcommands for extracting and
// evaluating company and product names from websites.
package cmd

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	cmdevaluate "github.com/yasi76/namesift/cmd/evaluate"
	cmdextract "github.com/yasi76/namesift/cmd/extract"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// Debug enables debug mode for all commands
	Debug bool

	// rootCmd represents the root command for the namesift CLI.
	rootCmd = &cobra.Command{
		Use:   "namesift",
		Short: "Extract company and product names from websites",
		Long: `namesift fetches web pages and extracts company and product names
from structured data, metadata, headings, and the domain itself, scoring
each candidate by the reliability of its source.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command
func Execute() error {
	// Load .env file early so environment variables are available
	// when the config layer reads them. Missing files are fine.
	_ = godotenv.Load()

	return rootCmd.ExecuteContext(context.Background())
}

// init initializes the root command and its subcommands.
func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./namesift.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug mode")

	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("namesift version %s\n", Version)
		},
	})

	// Add subcommands
	rootCmd.AddCommand(cmdextract.Command(&cfgFile, &Debug))
	rootCmd.AddCommand(cmdevaluate.Command(&cfgFile, &Debug))
}
