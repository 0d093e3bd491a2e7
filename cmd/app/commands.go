package main

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"facturo/internal/infra"
	"facturo/internal/services"
	"facturo/pkg/utils"
)

const (
	oneShotTimeout = 10 * time.Minute
	stopTimeout    = 15 * time.Second
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd.Context(), core(), fx.Invoke(func(lc fx.Lifecycle, db *gorm.DB, log *zap.Logger) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						if err := infra.Migrate(ctx, db); err != nil {
							return err
						}
						log.Info("schema up to date")
						return nil
					},
				})
			}))
		},
	}
}

func notifyOverdueCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "notify-overdue",
		Short: "Email every account holding overdue invoices once, then exit",
		Example: `  facturo notify-overdue
  facturo notify-overdue --date 2024-03-10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var day *datatypes.Date
			if date != "" {
				d, err := utils.ParseDate(date)
				if err != nil {
					return err
				}
				day = &d
			}

			return runOnce(cmd.Context(), fx.Options(core(), domain()), fx.Invoke(
				func(lc fx.Lifecycle, service services.OverdueNotificationServiceInterface, clock utils.Clock) {
					lc.Append(fx.Hook{
						OnStart: func(ctx context.Context) error {
							today := clock.Today()
							if day != nil {
								today = *day
							}
							report, err := service.Run(ctx, today)
							if report != nil {
								if encErr := printReport(cmd.OutOrStdout(), report); encErr != nil {
									return encErr
								}
							}
							return err
						},
					})
				},
			))
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "business day to check, YYYY-MM-DD (defaults to today)")
	return cmd
}

func printReport(w io.Writer, report *services.NotificationReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// runOnce builds the graph and starts it: the work runs in OnStart hooks,
// bounded by oneShotTimeout, then the app stops.
func runOnce(ctx context.Context, opts ...fx.Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	app := fx.New(opts...)
	if err := app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(ctx, oneShotTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}

	stopCtx, cancelStop := context.WithTimeout(context.Background(), stopTimeout)
	defer cancelStop()
	return app.Stop(stopCtx)
}
