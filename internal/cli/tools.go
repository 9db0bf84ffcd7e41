package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// Tool selects one of the bench's tools.
type Tool string

const (
	ToolCard    Tool = "card"
	ToolJPEG    Tool = "jpeg"
	ToolQR      Tool = "qr"
	ToolEmails  Tool = "emails"
	ToolPalette Tool = "palette"
)

// ToolInfo describes a tool and the subcommand that runs it.
type ToolInfo struct {
	Tool        Tool
	Command     string
	Description string
}

// Tools returns every tool in display order.
func Tools() []ToolInfo {
	return []ToolInfo{
		{ToolCard, "card", "Render a post as a PNG or JPEG card"},
		{ToolJPEG, "compress", "Re-encode an image as JPEG at a chosen quality"},
		{ToolQR, "qr", "Generate a QR code with optional logo, as PNG or SVG"},
		{ToolEmails, "emails", "Extract unique email addresses from text"},
		{ToolPalette, "palette", "Extract the most common colours of an image"},
	}
}

// ParseTool accepts a tool name or its subcommand name.
func ParseTool(s string) (Tool, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, info := range Tools() {
		if s == string(info.Tool) || s == info.Command {
			return info.Tool, nil
		}
	}
	return "", fmt.Errorf("unknown tool: %s", s)
}

func newToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools [tool]",
		Short: "List the available tools",
		Long: `List every tool with the subcommand that runs it.

Given a tool name, print that tool's subcommand help instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTools,
	}
}

func runTools(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		tool, err := ParseTool(args[0])
		if err != nil {
			return err
		}
		for _, info := range Tools() {
			if info.Tool != tool {
				continue
			}
			sub, _, err := cmd.Root().Find([]string{info.Command})
			if err != nil {
				return fmt.Errorf("failed to find command for %s: %w", tool, err)
			}
			sub.SetOut(cmd.OutOrStdout())
			return sub.Help()
		}
	}

	table := NewTable("Tool", "Command", "Description")
	for _, info := range Tools() {
		table.AddRow(string(info.Tool), info.Command, info.Description)
	}
	fmt.Fprint(cmd.OutOrStdout(), table.Render())
	return nil
}
