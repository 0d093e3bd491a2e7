package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"facturo/cmd/fx/account_fx"
	"facturo/cmd/fx/billing_fx"
	"facturo/cmd/fx/config_fx"
	"facturo/cmd/fx/controllers_fx"
	"facturo/cmd/fx/crm_fx"
	"facturo/cmd/fx/dashboard"
	"facturo/cmd/fx/db_fx"
	"facturo/cmd/fx/mail_fx"
	"facturo/cmd/fx/memcache_fx"
	"facturo/cmd/fx/scheduler_fx"
	"facturo/cmd/fx/server_fx"
)

var rootCmd = &cobra.Command{
	Use:           "facturo",
	Short:         "Invoicing and CRM API for freelancers",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.AddCommand(serveCmd(), schedulerCmd(), migrateCmd(), notifyOverdueCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// core holds what every command needs to reach the database.
func core() fx.Option {
	return fx.Options(
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		config_fx.Module,
		db_fx.Module,
	)
}

// domain holds the services shared by the API and the background jobs.
func domain() fx.Option {
	return fx.Options(
		memcache_fx.Module,
		mail_fx.Module,
		account_fx.Module,
		crm_fx.Module,
		billing_fx.Module,
	)
}

func serveCmd() *cobra.Command {
	var withScheduler bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []fx.Option{
				core(),
				domain(),
				dashboard.Module,
				controllers_fx.Module,
				server_fx.Module,
			}
			if withScheduler {
				opts = append(opts, scheduler_fx.Module)
			}
			app := fx.New(opts...)
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
	cmd.Flags().BoolVar(&withScheduler, "with-scheduler", false, "also run the overdue reminder job in this process")
	return cmd
}

func schedulerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scheduler",
		Short: "Run the daily overdue invoice reminder job",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fx.New(core(), domain(), scheduler_fx.Module)
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
}
