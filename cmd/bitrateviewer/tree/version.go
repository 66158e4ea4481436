package tree

import (
	"github.com/spf13/cobra"

	"github.com/rollingQP/BitrateViewer/internal/version"
)

var (
	VersionCmd = &cobra.Command{
		Use:   "version",
		Short: "Show the version of bitrateviewer",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version.Version)
		},
	}
)
