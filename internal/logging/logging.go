// Package logging builds the hclog loggers used by each command.
package logging

import (
	"io"

	"github.com/hashicorp/go-hclog"
)

// Root is the logger name prefix shared by all commands.
const Root = "toolbench"

// Level maps the verbose and quiet flags to a log level. Verbose wins.
func Level(verbose, quiet bool) hclog.Level {
	switch {
	case verbose:
		return hclog.Debug
	case quiet:
		return hclog.Error
	default:
		return hclog.Info
	}
}

// New returns a logger named "toolbench.<name>" writing to w.
// A nil w discards output.
func New(name string, w io.Writer, verbose, quiet bool) hclog.Logger {
	if w == nil {
		return hclog.NewNullLogger()
	}
	full := Root
	if name != "" {
		full += "." + name
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   full,
		Output: w,
		Level:  Level(verbose, quiet),
	})
}
