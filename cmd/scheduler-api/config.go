// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"log/slog"
	"os"
	"strconv"

	"github.com/nats-io/nats.go"

	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/infrastructure/store"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/logging"
)

// flags are the command line flags for the scheduling service.
type flags struct {
	Debug bool
}

// environment are the environment variables for the scheduling service.
type environment struct {
	NatsURL             string
	DatabaseDSN         string
	AvailabilityWorkers int
}

// parseFlags parses command line flags for the scheduling service
func parseFlags() flags {
	var debug = flag.Bool("d", false, "enable debug logging")

	flag.Usage = func() {
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()

	// Based on the debug flag, set the log level environment variable used by [logging.InitStructureLogConfig]
	if *debug {
		err := os.Setenv("LOG_LEVEL", "debug")
		if err != nil {
			slog.With(logging.ErrKey, err).Error("error setting log level")
			os.Exit(1)
		}
	}

	return flags{
		Debug: *debug,
	}
}

// parseEnv parses environment variables for the scheduling service
func parseEnv() environment {
	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = nats.DefaultURL
	}

	workers := 0
	if raw := os.Getenv("AVAILABILITY_WORKERS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			slog.With("value", raw).Warn("invalid AVAILABILITY_WORKERS, using default")
		} else {
			workers = parsed
		}
	}

	return environment{
		NatsURL:             natsURL,
		DatabaseDSN:         store.MakeDSNFromEnv(),
		AvailabilityWorkers: workers,
	}
}
