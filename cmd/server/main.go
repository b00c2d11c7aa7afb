package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/momahgoub172/rate-limiting-algorithms/internal/clock"
	"github.com/momahgoub172/rate-limiting-algorithms/internal/config"
	"github.com/momahgoub172/rate-limiting-algorithms/internal/log"
	"github.com/momahgoub172/rate-limiting-algorithms/internal/metrics"
	"github.com/momahgoub172/rate-limiting-algorithms/internal/ratelimiter"
	"github.com/momahgoub172/rate-limiting-algorithms/internal/ratelimiter/algorithm"
	"github.com/momahgoub172/rate-limiting-algorithms/internal/server"
)

type flags struct {
	configPath string
	addr       string
	algorithm  string
	limit      int
	window     time.Duration
	rate       float64
	logLevel   string
}

func newRootCommand() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:           "server",
		Short:         "HTTP server guarded by a single rate limiter",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(f.configPath)
			if err != nil {
				return err
			}
			if err := f.apply(cmd, &cfg); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "path to a YAML config file")
	cmd.Flags().StringVar(&f.addr, "addr", "", "listen address")
	cmd.Flags().StringVar(&f.algorithm, "algorithm", "", "fixed_window, sliding_window, leaky_bucket or token_bucket")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "window limit or bucket capacity")
	cmd.Flags().DurationVar(&f.window, "window", 0, "window size for the window algorithms")
	cmd.Flags().Float64Var(&f.rate, "rate", 0, "leak or refill rate per second for the bucket algorithms")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	return cmd
}

// apply overrides cfg with the flags the user actually set.
func (f flags) apply(cmd *cobra.Command, cfg *config.Config) error {
	changed := cmd.Flags().Changed
	if changed("addr") {
		cfg.Server.Addr = f.addr
	}
	if changed("algorithm") {
		t, err := ratelimiter.ParseType(f.algorithm)
		if err != nil {
			return err
		}
		cfg.Limiter.Type = t
	}
	if changed("limit") {
		cfg.Limiter.Limit = f.limit
	}
	if changed("window") {
		cfg.Limiter.Window = f.window
	}
	if changed("rate") {
		cfg.Limiter.Rate = f.rate
	}
	if changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	return cfg.Validate()
}

func run(ctx context.Context, cfg config.Config) (err error) {
	if err := log.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger := log.Logger()
	defer func() { _ = log.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector, err := metrics.NewCollector(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	limiter, err := ratelimiter.New(cfg.Limiter, algorithm.WithLogger(logger.Named("ratelimiter")))
	if err != nil {
		return fmt.Errorf("create limiter: %w", err)
	}
	defer func() {
		multierr.AppendInto(&err, limiter.Close())
	}()

	logger.Info("rate limiter ready",
		zap.Stringer("algorithm", cfg.Limiter.Type),
		zap.Int("limit", cfg.Limiter.Limit),
		zap.Duration("window", cfg.Limiter.Window),
		zap.Float64("rate", cfg.Limiter.Rate))

	if cfg.Report.Interval > 0 {
		reporter := server.NewReporter(clock.New(), collector, cfg.Report.Interval, logger.Named("stats"))
		reporter.Start()
		defer func() {
			multierr.AppendInto(&err, reporter.Stop())
		}()
	}

	srv := server.New(cfg.Server, ratelimiter.Instrument(limiter, collector), reg, logger.Named("server"))
	return srv.Run(ctx)
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Logger().Error("server exited", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}
