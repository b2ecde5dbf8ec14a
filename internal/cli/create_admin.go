package cli

import (
	"errors"
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/IslamGh2004/sawtlib/internal/auth"
	"github.com/IslamGh2004/sawtlib/internal/config"
	"github.com/IslamGh2004/sawtlib/internal/database"
	"github.com/IslamGh2004/sawtlib/internal/database/users"
)

// newCreateAdminCommand provisions an account directly against the
// database and grants it admin membership. Used for the very first
// administrator, before the dashboard is reachable.
func newCreateAdminCommand() *cobra.Command {
	var (
		dbPath string
		email  string
		name   string
	)

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return errors.New("--email is required")
			}

			password, err := readPassword("Password: ")
			if err != nil {
				return err
			}
			confirm, err := readPassword("Confirm password: ")
			if err != nil {
				return err
			}
			if password != confirm {
				return errors.New("passwords do not match")
			}

			db, err := database.NewDatabase(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			cfg := config.NewConfig()
			authService := auth.NewService(db.DB, cfg.Auth)

			user, err := authService.CreateUser(email, password, name)
			if err != nil {
				if errors.Is(err, auth.ErrUserExists) {
					// Existing account: just grant membership.
					userRepo := users.NewRepository(db.DB)
					existing, lookupErr := userRepo.GetUserByEmail(email)
					if lookupErr != nil {
						return fmt.Errorf("failed to look up existing user: %w", lookupErr)
					}
					if err := userRepo.GrantAdmin(existing.ID); err != nil {
						return fmt.Errorf("failed to grant admin: %w", err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Granted admin access to existing account %s (id %d)\n", email, existing.ID)
					return nil
				}
				return fmt.Errorf("failed to create user: %w", err)
			}

			if err := users.NewRepository(db.DB).GrantAdmin(user.ID); err != nil {
				return fmt.Errorf("failed to grant admin: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created administrator %s (id %d)\n", user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", config.DefaultDatabasePath, "Path to the database file")
	cmd.Flags().StringVar(&email, "email", "", "Email address of the administrator")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	return cmd
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}
