package cmd

import (
	"github.com/spf13/cobra"
)

// Version is set via ldflags at build time
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "eventum",
	Short: "Eventum - event registration backend",
	Long: `Eventum is an event-registration backend: users authenticate with
JWT tokens, administrators create and delete events, and users enroll in
them as event members.

Examples:
  eventum serve                   # Start the API server
  eventum serve --port 9000       # Start on a custom port
  eventum seed fixtures.json      # Load fixture data
  eventum create-admin alice      # Create an administrator account`,
}

func Execute() error {
	return rootCmd.Execute()
}
