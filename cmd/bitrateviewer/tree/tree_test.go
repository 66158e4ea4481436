package tree

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rollingQP/BitrateViewer/internal/version"
)

func TestVersionCmd(t *testing.T) {
	buf := new(bytes.Buffer)
	VersionCmd.SetOut(buf)

	VersionCmd.Run(VersionCmd, nil)

	if got := strings.TrimSpace(buf.String()); got != version.Version {
		t.Errorf("version command printed %q, expected %q", got, version.Version)
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	for _, name := range []string{"analyze", "info", "version"} {
		found := false
		for _, sub := range RootCmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}

func TestAnalyzeCmd_Flags(t *testing.T) {
	if AnalyzeCmd.Flags().Lookup("window") == nil {
		t.Error("analyze command is missing the --window flag")
	}
	if AnalyzeCmd.Flags().Lookup("output") == nil {
		t.Error("analyze command is missing the --output flag")
	}
}
