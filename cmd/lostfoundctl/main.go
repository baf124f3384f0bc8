// lostfoundctl is the operator CLI for the portal: migrations, staff
// account creation, and item approval without the web UI.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/campusportal/lostfound/internal/config"
	"github.com/campusportal/lostfound/internal/database"
	"github.com/campusportal/lostfound/internal/repository"
	"github.com/campusportal/lostfound/internal/services"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "lostfoundctl",
		Short:         "Administration CLI for the campus lost & found portal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return database.Connect(config.Load())
		},
	}

	root.AddCommand(newMigrateCommand())
	root.AddCommand(newCreateStaffCommand())
	root.AddCommand(newApproveCommand())
	return root
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return database.Migrate()
		},
	}
}

func newCreateStaffCommand() *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "createstaff",
		Short: "Create a staff account that can moderate items",
		RunE: func(cmd *cobra.Command, args []string) error {
			authService := services.NewAuthService(repository.NewUserRepository(database.GetDB()))

			user, err := authService.Register(services.RegisterInput{
				Username: username,
				Email:    email,
				Password: password,
				IsStaff:  true,
			})
			if err != nil {
				var fields services.FieldErrors
				if errors.As(err, &fields) {
					return fmt.Errorf("invalid input: %s", fields.Error())
				}
				return err
			}

			fmt.Printf("Created staff user %s (id %d)\n", user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "roll number of the staff account")
	cmd.Flags().StringVar(&email, "email", "", "email of the staff account")
	cmd.Flags().StringVar(&password, "password", "", "password of the staff account")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newApproveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <item-id>...",
		Short: "Approve items so they become publicly visible",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]uint64, 0, len(args))
			for _, arg := range args {
				id, err := strconv.ParseUint(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid item id %q", arg)
				}
				ids = append(ids, id)
			}

			moderation := services.NewModerationService(repository.NewItemRepository(database.GetDB()))
			n, err := moderation.Approve(ids)
			if err != nil {
				return err
			}

			fmt.Printf("Approved %d of %d items\n", n, len(ids))
			return nil
		},
	}
}
