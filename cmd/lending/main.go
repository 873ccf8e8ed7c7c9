package main

import (
	"context"
	"fmt"
	stdLog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/JasonDavD/biblioteca-bibliotech/lending/app"
	"github.com/JasonDavD/biblioteca-bibliotech/lending/config"
)

type flags struct {
	logLevel      string
	store         string
	sweepInterval time.Duration
	writeTimeout  time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	root := &cobra.Command{
		Use:          "lending",
		Short:        "Lending ledger: loans, copy inventory and overdue tracking",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
				stdLog.Fatal("load envs from .env ", err)
			}
		},
	}
	root.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "override LOG_LEVEL (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&f.store, "store", "", "override LEDGER_STORE (postgres, memory)")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API, the overdue sweeper and the capacity consumer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Run(ctx, cfg)
		},
	}
	serve.Flags().DurationVar(&f.sweepInterval, "sweep-interval", 0, "override LEDGER_SWEEP_INTERVAL")
	serve.Flags().DurationVar(&f.writeTimeout, "write-timeout", time.Minute, "override HTTP_WRITE")

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return app.Migrate(cmd.Context(), cfg)
		},
	}

	sweep := &cobra.Command{
		Use:   "sweep",
		Short: "Mark every active loan past its due date as overdue, once",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			n, err := app.Sweep(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d loan(s) marked overdue\n", n)
			return nil
		},
	}

	root.AddCommand(serve, migrate, sweep)
	root.SetContext(context.Background())
	return root
}

// loadConfig applies only the flags the operator actually set, so the
// environment stays authoritative otherwise.
func loadConfig(cmd *cobra.Command, f flags) (*config.Config, error) {
	var ops []config.Option
	if cmd.Flags().Changed("log-level") {
		level, err := zapcore.ParseLevel(f.logLevel)
		if err != nil {
			return nil, err
		}
		ops = append(ops, config.WithLogLevel(level))
	}
	if cmd.Flags().Changed("store") {
		ops = append(ops, config.WithStore(f.store))
	}
	if cmd.Flags().Changed("write-timeout") {
		ops = append(ops, config.WithWriteTimeout(f.writeTimeout))
	}
	if cmd.Flags().Changed("sweep-interval") {
		ops = append(ops, config.WithSweepInterval(f.sweepInterval))
	}
	return config.NewConfig(ops...), nil
}
