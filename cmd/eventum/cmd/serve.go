package cmd

import (
	"github.com/eventum-io/eventum/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort int
	serveMode string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the Eventum API server and block until interrupted.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.RunWithSignalHandling(server.Config{
			Port:    servePort,
			Mode:    serveMode,
			Version: Version,
		})
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to run the server on (overrides config)")
	serveCmd.Flags().StringVar(&serveMode, "mode", "", "Run mode: development or production (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
