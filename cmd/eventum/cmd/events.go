package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/eventum-io/eventum/internal/apiclient"
	"github.com/spf13/cobra"
)

var (
	serverURL   string
	serverToken string

	eventName     string
	eventStart    string
	eventFinish   string
	eventTimeSpec = "2006-01-02 15:04"
)

// remoteClient builds an API client from the --server and --token flags.
// The token falls back to the EVENTUM_TOKEN environment variable.
func remoteClient() *apiclient.Client {
	token := serverToken
	if token == "" {
		token = os.Getenv("EVENTUM_TOKEN")
	}
	return apiclient.New(serverURL, token)
}

func parseEventID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid event id %q", arg)
	}
	return uint(id), nil
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Manage events on a running server",
	Long: `Inspect and manage events over the HTTP API of a running Eventum
server. Mutating subcommands need an admin token, passed with --token or
the EVENTUM_TOKEN environment variable.`,
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all events",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := remoteClient().ListEvents(cmd.Context())
		if err != nil {
			return err
		}

		if len(events) == 0 {
			fmt.Println("No events")
			return nil
		}
		for _, e := range events {
			fmt.Printf("%d\t%s\t%s → %s\t%d member(s)\n",
				e.ID, e.Name,
				e.StartedAt.Local().Format(eventTimeSpec),
				e.FinishedAt.Local().Format(eventTimeSpec),
				len(e.Members))
		}
		return nil
	},
}

var eventsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one event with its members",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseEventID(args[0])
		if err != nil {
			return err
		}

		event, err := remoteClient().GetEvent(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Printf("ID:       %d\n", event.ID)
		fmt.Printf("Name:     %s\n", event.Name)
		fmt.Printf("Starts:   %s\n", event.StartedAt.Local().Format(eventTimeSpec))
		fmt.Printf("Finishes: %s\n", event.FinishedAt.Local().Format(eventTimeSpec))
		fmt.Printf("Members:  %d\n", len(event.Members))
		for _, m := range event.Members {
			fmt.Printf("  - %s\n", m.Name)
		}
		return nil
	},
}

var eventsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an event (admin token required)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		startedAt, err := time.ParseInLocation(eventTimeSpec, eventStart, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --start, want %q: %w", eventTimeSpec, err)
		}
		finishedAt, err := time.ParseInLocation(eventTimeSpec, eventFinish, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --finish, want %q: %w", eventTimeSpec, err)
		}

		event, err := remoteClient().CreateEvent(cmd.Context(), apiclient.CreateEventRequest{
			Name:       eventName,
			StartedAt:  startedAt,
			FinishedAt: finishedAt,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Event created with ID %d\n", event.ID)
		return nil
	},
}

var eventsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an event and its enrollments (admin token required)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseEventID(args[0])
		if err != nil {
			return err
		}

		if err := remoteClient().DeleteEvent(cmd.Context(), id); err != nil {
			return err
		}

		fmt.Printf("Event %d deleted\n", id)
		return nil
	},
}

func init() {
	eventsCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8000", "Base URL of the Eventum server")
	eventsCmd.PersistentFlags().StringVar(&serverToken, "token", "", "Access token (defaults to EVENTUM_TOKEN)")

	eventsCreateCmd.Flags().StringVar(&eventName, "name", "", "Event name")
	eventsCreateCmd.Flags().StringVar(&eventStart, "start", "", `Start time, e.g. "2026-03-01 10:00"`)
	eventsCreateCmd.Flags().StringVar(&eventFinish, "finish", "", `Finish time, e.g. "2026-03-01 12:00"`)
	eventsCreateCmd.MarkFlagRequired("name")
	eventsCreateCmd.MarkFlagRequired("start")
	eventsCreateCmd.MarkFlagRequired("finish")

	eventsCmd.AddCommand(eventsListCmd)
	eventsCmd.AddCommand(eventsGetCmd)
	eventsCmd.AddCommand(eventsCreateCmd)
	eventsCmd.AddCommand(eventsDeleteCmd)
	rootCmd.AddCommand(eventsCmd)
}
