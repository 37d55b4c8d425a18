package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"
	"time"

	"github.com/google/uuid"

	service "github.com/okian/nightwatch/internal/app"
	"github.com/okian/nightwatch/internal/config"
	"github.com/okian/nightwatch/internal/domain/analytics"
	"github.com/okian/nightwatch/internal/report"
	"github.com/okian/nightwatch/pkg/logger"
	"github.com/okian/nightwatch/pkg/metrics"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}

// run executes one analysis. Errors are logged before they are returned.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	if err := logger.InitWithWriter(stderr); err != nil {
		_, _ = io.WriteString(stderr, "failed to initialize logging: "+err.Error()+"\n")
		return err
	}
	defer func() {
		if serr := logger.Sync(); serr != nil && err == nil {
			err = serr
		}
	}()

	fs := flag.NewFlagSet("nightwatch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML config file (default $"+config.EnvConfigPath+")")
	input := fs.String("input", "", "guard log to analyze (overrides config)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	log := logger.Get().With(logger.String("run_id", uuid.NewString()))

	cfg, err := config.Load(ctx, *configPath)
	if err != nil {
		log.Error(ctx, "failed to load config", logger.Error(err))
		return err
	}
	if *input != "" {
		cfg.Input = *input
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	var mm *metrics.Manager
	if cfg.MetricsFile != "" {
		mm = metrics.NewManager(metrics.WithConstLabels(map[string]string{"input": filepath.Base(cfg.Input)}))
		defer func() {
			if werr := mm.WriteTextfile(cfg.MetricsFile); werr != nil {
				log.Warn(ctx, "failed to write metrics", logger.String("path", cfg.MetricsFile), logger.Error(werr))
			}
		}()
	}

	f, err := os.Open(cfg.Input)
	if err != nil {
		log.Error(ctx, "failed to open input", logger.String("input", cfg.Input), logger.Error(err))
		mm.RecordRun(metrics.OutcomeFailure, time.Now())
		return err
	}
	defer func() { _ = f.Close() }()

	svc := service.New(
		service.WithLogger(log.Named("pipeline")),
		service.WithTopN(cfg.TopN),
		service.WithMetrics(mm),
	)
	res, err := svc.Run(ctx, f)
	if err != nil {
		return err
	}

	if err := report.Write(stdout, res.Report, report.Options{MinuteStrategy: cfg.MinuteStrategy}); err != nil {
		log.Error(ctx, "failed to write report", logger.Error(err))
		return fmt.Errorf("write report: %w", err)
	}

	if cfg.Heatmap {
		guards := analytics.Ranking(res.Tables, cfg.HeatmapGuards)
		slices.Reverse(guards)
		if err := report.Heatmap(stderr, res.Tables, guards); err != nil {
			log.Warn(ctx, "failed to render heatmap", logger.Error(err))
		}
	}
	return nil
}
