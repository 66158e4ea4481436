package tree

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	RootCmd = &cobra.Command{
		Use:   "bitrateviewer",
		Short: "Analyze per-second video bitrate with ffprobe",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging()
		},
	}
)

func init() {
	viper.SetEnvPrefix("BRV")
	viper.AutomaticEnv()
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_format", "text")

	RootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("log_level", RootCmd.PersistentFlags().Lookup("log-level"))

	RootCmd.AddCommand(AnalyzeCmd)
	RootCmd.AddCommand(InfoCmd)
	RootCmd.AddCommand(VersionCmd)
}

// configureLogging applies the level and format from flags and BRV_* env vars.
func configureLogging() {
	if level, err := log.ParseLevel(viper.GetString("log_level")); err == nil {
		log.SetLevel(level)
	}
	if viper.GetString("log_format") == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	}
}
