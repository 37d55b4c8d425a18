// Package service wires the parse, reduce and analyze stages into one run.
package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/okian/nightwatch/internal/domain/analytics"
	"github.com/okian/nightwatch/internal/domain/parser"
	"github.com/okian/nightwatch/internal/domain/sleep"
	"github.com/okian/nightwatch/pkg/logger"
	"github.com/okian/nightwatch/pkg/metrics"
)

// Result is the output of a run.
type Result struct {
	Report analytics.Report
	Tables *sleep.Tables
}

// Service runs the guard log pipeline.
type Service struct {
	topN    int
	logger  logger.Logger
	metrics *metrics.Manager
	now     func() time.Time
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithTopN sets the ranking length.
func WithTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topN = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics manager. Without one nothing is recorded.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		topN: analytics.DefaultTopN,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// Run parses the log in r, reduces it and analyzes the tables.
func (s *Service) Run(ctx context.Context, r io.Reader) (Result, error) {
	res, err := s.run(ctx, r)
	if err != nil {
		s.metrics.RecordRun(metrics.OutcomeFailure, s.now())
		s.logger.Error(ctx, "run failed", logger.Error(err))
		return Result{}, err
	}
	s.metrics.RecordRun(metrics.OutcomeSuccess, s.now())
	return res, nil
}

func (s *Service) run(ctx context.Context, r io.Reader) (Result, error) {
	start := s.now()
	events, err := parser.Parse(ctx, r)
	if err != nil {
		return Result{}, fmt.Errorf("parse: %w", err)
	}
	s.metrics.ObserveStage(metrics.StageParse, s.now().Sub(start))
	s.metrics.AddLinesParsed(len(events))
	for _, ev := range events {
		s.metrics.RecordEvent(ev.Kind.String())
	}
	s.logger.Debug(ctx, "parsed log", logger.Int("events", len(events)))

	start = s.now()
	tables, err := sleep.Reduce(events)
	if err != nil {
		return Result{}, fmt.Errorf("reduce: %w", err)
	}
	s.metrics.ObserveStage(metrics.StageReduce, s.now().Sub(start))

	total := 0
	for _, id := range tables.Guards() {
		t, _ := tables.Get(id)
		total += t.Total()
	}
	s.metrics.SetGuards(tables.Len())
	s.metrics.SetSleepMinutes(total)
	s.logger.Debug(ctx, "reduced events", logger.Int("guards", tables.Len()), logger.Int("sleepMinutes", total))

	start = s.now()
	report, err := analytics.Analyze(tables, s.topN)
	if err != nil {
		return Result{}, fmt.Errorf("analyze: %w", err)
	}
	s.metrics.ObserveStage(metrics.StageAnalyze, s.now().Sub(start))

	s.logger.Info(ctx, "analysis complete",
		logger.Guard(report.Guard),
		logger.Int("minute", report.Minute),
		logger.Int("product", report.Product),
	)
	return Result{Report: report, Tables: tables}, nil
}
