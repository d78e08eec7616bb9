// Package main provides the entry point for the qurankit CLI.
package main

import (
	"os"

	"github.com/qurankit/qurankit/cmd/qurankit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
