// Package cli provides the command-line interface for toolbench.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/toolbench/internal/logging"
	"github.com/jmylchreest/toolbench/internal/version"
)

// appFs is the filesystem every command reads from and writes to.
var appFs = afero.NewOsFs()

// versionJSON prints version information as JSON.
var versionJSON bool

// NewRootCmd builds the full command tree. Each call returns a fresh tree
// with flag values reset to their defaults.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "toolbench",
		Short: "A bench of small offline image and text tools",
		Long: `toolbench bundles a handful of self-contained utilities behind one command.

Each tool works only on the files or text you give it: nothing is uploaded,
stored, or shared between tools.

Tools:
  card      render a post as a shareable image card
  compress  re-encode an image as a smaller JPEG
  qr        generate a QR code as PNG or SVG
  emails    pull unique email addresses out of text
  palette   extract the dominant colours of an image`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")
	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newToolsCmd())
	rootCmd.AddCommand(newCardCmd())
	rootCmd.AddCommand(newCompressCmd())
	rootCmd.AddCommand(newQRCmd())
	rootCmd.AddCommand(newEmailsCmd())
	rootCmd.AddCommand(newPaletteCmd())

	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// commandLogger returns the logger for tool, honouring --verbose and --quiet.
func commandLogger(cmd *cobra.Command, tool Tool) hclog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")
	return logging.New(string(tool), cmd.ErrOrStderr(), verbose, quiet)
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		RunE:  runVersion,
	}
	cmd.Flags().BoolVar(&versionJSON, "json", false, "print version information as JSON")
	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) error {
	if !versionJSON {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
		return nil
	}
	data, err := json.MarshalIndent(version.GetInfo(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode version: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
