package main

import (
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// opener connects to the database named by the environment.
type opener func() (*gorm.DB, error)

func newRootCmd(open opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "blogctl",
		Short:         "Blog operator CLI",
		Long:          "Command line interface for migrating the blog database and inspecting users and boards.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		migrateCmd(open),
		usersCmd(open),
		boardsCmd(open),
	)
	return root
}

// withDB opens the database for one command and closes it when fn returns.
func withDB(open opener, fn func(db *gorm.DB) error) error {
	db, err := open()
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer func() { _ = sqlDB.Close() }()
	}
	return fn(db)
}
