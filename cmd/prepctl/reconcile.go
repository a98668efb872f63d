package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"interview-prep-be/internal/bootstrap"
	"interview-prep-be/internal/dto"
	"interview-prep-be/pkg/events"
	pktNats "interview-prep-be/pkg/nats"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func reconcileCmd() *cobra.Command {
	var (
		owner   string
		asJSON  bool
		session string
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Repair session reference lists left behind by partial creations",
		Long: `Repair session reference lists.

Questions that point at a session but are missing from its list are attached
in creation order, and references to missing or foreign questions are dropped.
Without --owner or --session, orphaned questions and reference rows whose
session no longer exists are deleted as well.

Examples:
  prepctl reconcile
  prepctl reconcile --owner 6f1c...   # only this user's sessions
  prepctl reconcile --session 0b9e... --owner 6f1c...`,
		PreRunE: connect,
		RunE: func(cmd *cobra.Command, args []string) error {
			publisher, closePublisher := cliPublisher()
			defer closePublisher()
			services := bootstrap.NewServices(db, cfg, publisher, sysLog)

			var ownerId *uuid.UUID
			if owner != "" {
				id, err := uuid.Parse(owner)
				if err != nil {
					return fmt.Errorf("invalid --owner: %w", err)
				}
				ownerId = &id
			}

			ctx := context.Background()
			if session != "" {
				if ownerId == nil {
					return fmt.Errorf("--session requires --owner")
				}
				sessionId, err := uuid.Parse(session)
				if err != nil {
					return fmt.Errorf("invalid --session: %w", err)
				}
				res, err := services.Reconcile.ReconcileSession(ctx, *ownerId, sessionId)
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(res)
				}
				printSession(res)
				return nil
			}

			report, err := services.Reconcile.ReconcileAll(ctx, ownerId)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(report)
			}

			for _, res := range report.Sessions {
				printSession(res)
			}
			color.Cyan("Scanned %d sessions, repaired %d", report.SessionsScanned, report.SessionsRepaired)
			if ownerId == nil {
				color.Cyan("Deleted %d orphaned questions, %d orphaned references", report.OrphanedQuestionsDeleted, report.OrphanedRefsDeleted)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "only reconcile sessions of this user id")
	cmd.Flags().StringVar(&session, "session", "", "reconcile a single session (requires --owner)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")

	return cmd
}

func printSession(res *dto.ReconcileSessionResponse) {
	if !res.Repaired() {
		fmt.Printf("%s ok\n", res.SessionId)
		return
	}
	color.Yellow("%s attached=%d dropped=%d", res.SessionId, len(res.AttachedQuestionIds), len(res.DroppedReferenceIds))
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// cliPublisher sends domain events to NATS when it is configured and drops
// them otherwise.
func cliPublisher() (events.Publisher, func()) {
	if cfg.App.NatsURL == "" {
		return events.Discard{}, func() {}
	}
	pub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		color.Yellow("Warn: NATS unavailable, events are not published: %v", err)
		return events.Discard{}, func() {}
	}
	return pub, pub.Close
}
