// Command ticketmaster-events tails the booking events topic and logs every
// lifecycle event written by ticketmaster sessions.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/ticketmaster/config"
	"github.com/Domenick1991/ticketmaster/internal/events"
	"github.com/Domenick1991/ticketmaster/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errNoBrokers = errors.New("no kafka brokers configured")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var cfgPath, groupID string

	cmd := &cobra.Command{
		Use:   "ticketmaster-events",
		Short: "Log booking lifecycle events published by ticketmaster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if groupID != "" {
				cfg.Kafka.GroupID = groupID
			}
			if len(cfg.Kafka.Brokers) == 0 {
				return errNoBrokers
			}

			log, err := logger.New(cfg.Log)
			if err != nil {
				return err
			}
			defer log.Sync()

			consumer := events.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BookingEventsTopic, log)
			defer consumer.Close()

			log.Info("consuming booking events",
				zap.Strings("brokers", cfg.Kafka.Brokers),
				zap.String("topic", cfg.Kafka.BookingEventsTopic),
				zap.String("group_id", cfg.Kafka.GroupID),
			)
			err = consumer.Consume(cmd.Context(), logEvent(log))
			if errors.Is(err, context.Canceled) {
				log.Info("shutting down")
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", defaultConfigPath(), "path to the yaml config file")
	cmd.Flags().StringVar(&groupID, "group", "", "consumer group id, overrides kafka.group_id")
	return cmd
}

func defaultConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}

func logEvent(log *zap.Logger) func(context.Context, events.BookingEvent) error {
	return func(_ context.Context, e events.BookingEvent) error {
		fields := []zap.Field{
			zap.String("event_id", e.ID),
			zap.String("type", e.Type),
			zap.Time("occurred_at", e.OccurredAt),
		}
		if e.BookingID != 0 {
			fields = append(fields, zap.Int64("booking_id", e.BookingID))
		}
		if e.ShowID != 0 {
			fields = append(fields, zap.Int64("show_id", e.ShowID))
		}
		if e.Email != "" {
			fields = append(fields, zap.String("email", e.Email))
		}
		if e.FromSeatID != 0 || e.ToSeatID != 0 {
			fields = append(fields, zap.Int64("from_seat", e.FromSeatID), zap.Int64("to_seat", e.ToSeatID))
		}
		if e.Count != 0 {
			fields = append(fields, zap.Int64("count", e.Count))
		}
		log.Info("booking event", fields...)
		return nil
	}
}
