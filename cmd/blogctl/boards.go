package main

import (
	"blog_backend/internal/app/di"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func boardsCmd(open opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boards",
		Short: "Inspect boards",
	}
	cmd.AddCommand(listBoardsCmd(open))
	return cmd
}

func listBoardsCmd(open opener) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List boards, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(open, func(db *gorm.DB) error {
				// No cache: the CLI always reads the database.
				boards, err := di.NewBoardUsecase(nil, db, 0).List(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), boards)
				}

				rows := make([][]any, 0, len(boards))
				for _, b := range boards {
					rows = append(rows, []any{b.ID, b.Title, b.User.Username, b.CreatedAt.Format(timeLayout)})
				}
				renderTable(cmd.OutOrStdout(), []string{"ID", "Title", "Author", "Created"}, rows)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
