package main

import (
	"os"

	"github.com/rollingQP/BitrateViewer/cmd/bitrateviewer/tree"
)

func main() {
	if err := tree.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
