package main

import (
	"fmt"

	"blog_backend/internal/app/di"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func usersCmd(open opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage blog users",
	}
	cmd.AddCommand(createUserCmd(open), listUsersCmd(open))
	return cmd
}

func createUserCmd(open opener) *cobra.Command {
	var username, password, email string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a user",
		Long:  "Register a user the same way POST /join does. A taken username is an error.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(open, func(db *gorm.DB) error {
				user, err := di.NewUserUsecase(db).Join(cmd.Context(), username, password, email)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "User %q created with id %d.\n", user.Username, user.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "login name")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().StringVar(&email, "email", "", "contact address")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func listUsersCmd(open opener) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(open, func(db *gorm.DB) error {
				users, err := di.NewUserUsecase(db).List(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), users)
				}

				rows := make([][]any, 0, len(users))
				for _, u := range users {
					rows = append(rows, []any{u.ID, u.Username, u.Email, u.CreatedAt.Format(timeLayout)})
				}
				renderTable(cmd.OutOrStdout(), []string{"ID", "Username", "Email", "Joined"}, rows)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
