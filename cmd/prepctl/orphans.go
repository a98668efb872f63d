package main

import (
	"context"
	"fmt"

	"interview-prep-be/internal/bootstrap"
	"interview-prep-be/pkg/events"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func orphansCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "orphans",
		Short:   "List questions whose session no longer exists",
		PreRunE: connect,
		RunE: func(cmd *cobra.Command, args []string) error {
			services := bootstrap.NewServices(db, cfg, events.Discard{}, sysLog)

			ids, err := services.Reconcile.FindOrphanedQuestions(context.Background())
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			if len(ids) == 0 {
				color.Green("No orphaned questions")
				return nil
			}
			color.Yellow("%d orphaned questions, run 'prepctl reconcile' to delete them", len(ids))
			return nil
		},
	}
}
