package main

import (
	"interview-prep-be/internal/model"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "migrate",
		Short:   "Create or update the session and question tables",
		PreRunE: connect,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := db.AutoMigrate(model.All()...); err != nil {
				return err
			}
			color.Green("Migration completed")
			return nil
		},
	}
}
