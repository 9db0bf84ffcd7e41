// toolbench - small offline image and text tools
//
// toolbench renders post cards, re-compresses JPEGs, generates QR codes,
// extracts email addresses and picks colour palettes, all from local files.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/toolbench/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
