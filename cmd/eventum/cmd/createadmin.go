package cmd

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/eventum-io/eventum/internal/auth"
	"github.com/eventum-io/eventum/internal/config"
	"github.com/eventum-io/eventum/internal/db"
	"github.com/eventum-io/eventum/internal/logger"
	"github.com/eventum-io/eventum/internal/models"
	"github.com/eventum-io/eventum/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	adminFirstName string
	adminPassword  string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin <username>",
	Short: "Create an administrator account",
	Long: `Create an ADMIN user. The password is read from the --password flag
or prompted for interactively.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]

		password := adminPassword
		if password == "" {
			fmt.Print("Password: ")
			passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			fmt.Println()
			password = strings.TrimSpace(string(passwordBytes))
		}
		if password == "" {
			return fmt.Errorf("password must not be empty")
		}

		firstName := adminFirstName
		if firstName == "" {
			firstName = username
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger.Init(cfg.Log.Format, cfg.Log.Level)

		database, err := db.New(cfg.Database)
		if err != nil {
			return err
		}
		if err := db.Migrate(database); err != nil {
			return err
		}

		authenticator := auth.NewAuthenticator(store.New(database), cfg.Auth)
		user, err := authenticator.Register(firstName, username, password, models.RoleAdmin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Admin user created")
		fmt.Printf("ID:       %d\n", user.ID)
		fmt.Printf("Username: %s\n", user.Username)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminFirstName, "first-name", "", "Display name (defaults to the username)")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Password (prompted when omitted)")
	rootCmd.AddCommand(createAdminCmd)
}
