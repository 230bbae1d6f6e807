package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Domenick1991/ticketmaster/config"
	"github.com/Domenick1991/ticketmaster/internal/console"
	"github.com/Domenick1991/ticketmaster/internal/database"
	"github.com/Domenick1991/ticketmaster/internal/events"
	"github.com/Domenick1991/ticketmaster/internal/logger"
	"github.com/Domenick1991/ticketmaster/internal/menu"
	"github.com/Domenick1991/ticketmaster/internal/repository"
	"github.com/Domenick1991/ticketmaster/internal/service/reports"
	"github.com/Domenick1991/ticketmaster/internal/service/workflow"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "ticketmaster <dbname> <port> <user>",
		Short: "Administrative menu for the Ticketmaster database",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			// args are valid past this point; later failures are not usage errors
			cmd.SilenceUsage = true

			port, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid port %q: %w", args[1], err)
			}

			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg.ApplyArgs(args[0], port, args[2])

			log, err := logger.New(cfg.Log)
			if err != nil {
				return err
			}
			defer log.Sync()

			return run(cmd.Context(), cfg, log, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", defaultConfigPath(), "path to the yaml config file")
	return cmd
}

func defaultConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger, in io.Reader, out io.Writer) error {
	fmt.Fprint(out, "Connecting to database...")
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		fmt.Fprintln(out, "Make sure you started postgres on this machine")
		log.Fatal("unable to connect to database", zap.Error(err))
	}
	fmt.Fprintf(out, "Connection URL: %s\n\nDone\n", db.Target())

	var opts []workflow.WorkflowServiceOption
	if len(cfg.Kafka.Brokers) > 0 {
		producer := events.NewProducer(cfg.Kafka.Brokers, log)
		defer producer.Close()
		opts = append(opts, workflow.WithEvents(producer, cfg.Kafka.BookingEventsTopic))
		log.Info("publishing booking events", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.BookingEventsTopic))
	}

	catalogRepo := repository.NewCatalogRepository(db)
	workflowService := workflow.NewWorkflowService(
		repository.NewUserRepository(db),
		catalogRepo,
		repository.NewBookingRepository(db),
		repository.NewSeatRepository(db),
		repository.NewShowRepository(db),
		log,
		opts...,
	)
	reportService := reports.NewReportService(repository.NewReportRepository(db), catalogRepo)

	dispatcher := menu.NewDispatcher(console.NewPrompter(in, out), workflowService, reportService, log)
	runErr := dispatcher.Run(ctx)
	if runErr != nil {
		log.Error("menu stopped", zap.Error(runErr))
	}

	fmt.Fprint(out, "Disconnecting from database...")
	db.Close()
	fmt.Fprintln(out, "Done\n\nBye !")
	return runErr
}
