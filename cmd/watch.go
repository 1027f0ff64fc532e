package cmd

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/luqmaan/oihclamirt/internal/api"
	"github.com/luqmaan/oihclamirt/internal/watch"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Poll every configured site continuously until interrupted.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, searches, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck // best-effort flush

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ops := api.NewServer(cfg.Server.Port, logger)
			go func() {
				if err := ops.Run(ctx); err != nil {
					logger.Error("ops server failed", zap.Error(err))
				}
			}()

			supervisor := watch.New(
				buildRunner(cfg, logger),
				sitesFromConfig(cfg),
				searches,
				watch.Config{
					MinDelay:        time.Duration(cfg.Watch.MinDelaySeconds) * time.Second,
					MaxDelay:        time.Duration(cfg.Watch.MaxDelaySeconds) * time.Second,
					CyclesPerSecond: cfg.Watch.CyclesPerSecond,
				},
				logger,
			)
			supervisor.Run(ctx)

			logger.Info("watcher stopped")
			return nil
		},
	}
}
