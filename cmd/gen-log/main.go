package main

import (
	"context"
	"flag"
	"io"
	"os"
	"time"

	"github.com/okian/nightwatch/internal/loggen"
	"github.com/okian/nightwatch/pkg/logger"
)

const defaultTimeout = 30 * time.Second

func main() {
	var (
		seed    = flag.Int64("seed", loggen.DefaultSeed, "Random seed; equal seeds give equal logs")
		guards  = flag.Int("guards", loggen.DefaultGuards, "Number of guards on the roster")
		nights  = flag.Int("nights", loggen.DefaultNights, "Number of shifts to generate")
		maxNaps = flag.Int("naps", loggen.DefaultMaxNaps, "Maximum sleep intervals per night")
		output  = flag.String("output", "", "Output file (default: stdout)")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Named("gen-log")

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	cfg := loggen.DefaultConfig()
	cfg.Seed = *seed
	cfg.Guards = *guards
	cfg.Nights = *nights
	cfg.MaxNaps = *maxNaps

	gen, err := loggen.Generate(ctx, cfg)
	if err != nil {
		log.Fatal(ctx, "failed to generate log", logger.Error(err))
	}

	var w io.Writer = os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatal(ctx, "failed to create output", logger.String("output", *output), logger.Error(err))
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if _, err := gen.WriteTo(w); err != nil {
		log.Fatal(ctx, "failed to write log", logger.Error(err))
	}
	log.Info(ctx, "generated log",
		logger.Int("lines", len(gen.Lines)),
		logger.Int("nights", len(gen.Nights)),
		logger.Any("seed", *seed),
	)
}
