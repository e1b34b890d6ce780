package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"proppilot/internal/amqp"
	"proppilot/internal/cli"
	"proppilot/internal/log"
)

func eventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Activity event tools",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "tail",
		Short: "Print activity events as they are published",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadAndValidateConfig()
			if err != nil {
				return err
			}
			if cfg.AMQPURL == "" {
				return errors.New("AMQP_URL is not set")
			}
			logger := cli.SetupLogger(cfg.LogLevel).WithComponent(log.ComponentAMQP)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			client := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey)
			defer client.Close()

			connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			err = client.Connect(connectCtx, 5)
			cancel()
			if err != nil {
				return fmt.Errorf("connect to broker: %w", err)
			}

			logger.Info("Waiting for activity events", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPRoutingKey)
			out := cmd.OutOrStdout()
			err = client.ConsumeActivity(ctx, func(ev *amqp.ActivityEvent) error {
				_, err := fmt.Fprintf(out, "%s  %-24s id=%d\n", ev.Timestamp.Format(time.RFC3339), ev.Type, ev.EntityID)
				return err
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	})
	return cmd
}
