package main

import (
	"os"

	"github.com/rs/zerolog"

	"pula-banking/bank"
	"pula-banking/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	addr := envOr("BANK_ADDR", ":8080")
	dataFile := envOr("BANK_DATA_FILE", "bank.json")

	// The snapshot store writes through on every successful mutation, so
	// there is no separate shutdown persistence step.
	repo, err := store.NewSnapshotStore(dataFile)
	if err != nil {
		logger.Fatal().Err(err).Str("file", dataFile).Msg("opening snapshot store")
	}

	b, err := bank.New(repo, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("loading ledger")
	}

	r := newRouter(b)
	logger.Info().Str("addr", addr).Msg("starting bank server")
	if err := r.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
