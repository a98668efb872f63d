package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"interview-prep-be/internal/config"
	"interview-prep-be/pkg/events"
	pktNats "interview-prep-be/pkg/nats"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func eventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect domain events on the NATS bus",
	}
	cmd.AddCommand(eventsTailCmd())
	return cmd
}

func eventsTailCmd() *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Print domain events as they are published",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg = config.Load()
			if cfg.App.NatsURL == "" {
				return fmt.Errorf("NATS_URL is not set")
			}

			sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
			if err != nil {
				return err
			}
			defer sub.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err = sub.Subscribe(ctx, subject, "", func(_ context.Context, event events.Event) error {
				data, _ := json.Marshal(event.Payload())
				fmt.Printf("%s %s %s\n",
					event.Timestamp().Format("15:04:05.000"),
					color.CyanString(event.EventType()),
					data,
				)
				return nil
			})
			if err != nil {
				return err
			}

			color.Green("Listening on %s (Ctrl+C to stop)", subject)
			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", pktNats.AllSubjects, "subject filter")
	return cmd
}
