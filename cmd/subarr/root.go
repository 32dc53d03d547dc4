package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "subarr",
	Short: "Upload local subtitles for your *arr library to SubDL",
	Long: `subarr - reconcile local subtitles against SubDL

Walks your Radarr and Sonarr libraries, finds local .srt files next to
the media, checks whether SubDL already has an equivalent subtitle for
the same release group, and uploads the ones it lacks. Finalized items
are remembered in a ledger so later runs skip them.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "subarr.toml", "Config file path")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("subarr {{.Version}}\n")
}
