package cmd

import (
	"github.com/spf13/cobra"

	"hzfm/server"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP API",
	Long:  `Start the HTTP API serving /api/tracks, /api/match and /api/recommend.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start(cfg)
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
