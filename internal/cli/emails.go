package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/toolbench/internal/compression"
	"github.com/jmylchreest/toolbench/internal/emails"
	"github.com/jmylchreest/toolbench/internal/security"
)

var (
	// Emails command flags
	emailsInput  string
	emailsFormat string
	emailsOutput string
)

func newEmailsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emails [text...]",
		Short: "Extract unique email addresses from text",
		Long: `Extract every unique email address from a block of text, in the order
they first appear.

Text is taken from the arguments, from --input, or from standard input
when neither is given. Input files compressed with gzip, bzip2 or xz are
decompressed automatically.

Examples:
  # From arguments
  toolbench emails "contact alice@example.com or bob@example.org"

  # From a compressed mailbox export, as JSON
  toolbench emails --input export.txt.gz --format json

  # From a pipe, as one comma separated line
  cat notes.txt | toolbench emails --format list`,
		RunE: runEmails,
	}

	cmd.Flags().StringVarP(&emailsInput, "input", "i", "", "read text from a file (.gz, .bz2 and .xz are decompressed)")
	cmd.Flags().StringVarP(&emailsFormat, "format", "f", "lines", "output format (lines, list, json)")
	cmd.Flags().StringVarP(&emailsOutput, "output", "o", "", "output file (default: stdout)")
	return cmd
}

// runEmails executes the emails command.
func runEmails(cmd *cobra.Command, args []string) error {
	logger := commandLogger(cmd, ToolEmails)

	text, err := emailsText(cmd, args)
	if err != nil {
		return err
	}

	addrs := emails.Extract(text)
	logger.Debug("extracted addresses", "count", len(addrs), "input_bytes", len(text))

	output, err := emails.Format(addrs, emailsFormat)
	if err != nil {
		return err
	}

	if emailsOutput != "" {
		if err := afero.WriteFile(appFs, emailsOutput, []byte(output), 0o644); err != nil { // #nosec G306 - Output files need standard read permissions
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Info("wrote addresses", "output", emailsOutput, "count", len(addrs))
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), output)
	return nil
}

// emailsText picks the text source: arguments, then --input, then stdin.
func emailsText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && emailsInput != "" {
		return "", fmt.Errorf("give text as arguments or --input, not both")
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if emailsInput != "" {
		data, err := compression.ReadFile(appFs, emailsInput)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	data, err := io.ReadAll(security.NewLimitedReader(cmd.InOrStdin(), compression.MaxDecompressedSize))
	if err != nil {
		return "", fmt.Errorf("failed to read standard input: %w", err)
	}
	return string(data), nil
}
