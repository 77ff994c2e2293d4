package cmd

import (
	"fmt"
	"strings"
	"syscall"

	"github.com/eventum-io/eventum/internal/apiclient"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	signinServer   string
	signinPassword string
)

var signinCmd = &cobra.Command{
	Use:   "signin <username>",
	Short: "Sign in against a running server and print a token pair",
	Long: `Authenticate against a running Eventum server. The printed access
token can be exported as EVENTUM_TOKEN for the events subcommands.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]

		password := signinPassword
		if password == "" {
			fmt.Print("Password: ")
			passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			fmt.Println()
			password = strings.TrimSpace(string(passwordBytes))
		}

		client := apiclient.NewWithoutAuth(signinServer)
		pair, err := client.Signin(cmd.Context(), username, password)
		if err != nil {
			return err
		}

		fmt.Printf("Access token:  %s\n", pair.AccessToken)
		fmt.Printf("Refresh token: %s\n", pair.RefreshToken)
		return nil
	},
}

func init() {
	signinCmd.Flags().StringVar(&signinServer, "server", "http://localhost:8000", "Base URL of the Eventum server")
	signinCmd.Flags().StringVar(&signinPassword, "password", "", "Password (prompted when omitted)")
	rootCmd.AddCommand(signinCmd)
}
