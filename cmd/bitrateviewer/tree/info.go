package tree

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/rollingQP/BitrateViewer/internal/probe"
)

var (
	infoJSON bool

	InfoCmd = &cobra.Command{
		Use:   "info <video>",
		Short: "Print the probed metadata of a video file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, args[0])
		},
	}
)

func init() {
	InfoCmd.Flags().BoolVar(&infoJSON, "json", false, "print metadata as JSON")
}

func runInfo(cmd *cobra.Command, videoPath string) error {
	tools, err := probe.Locate()
	if err != nil {
		return err
	}

	info, _, err := tools.Inspect(context.Background(), videoPath)
	if err != nil {
		return err
	}

	if infoJSON {
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(info.FileName())
	cmd.Println(info.SummaryLine())
	return nil
}
