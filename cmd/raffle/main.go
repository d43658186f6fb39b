package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/raffle-client/pkg/raffle"
)

func main() {
	// Keys usually live in a local .env; a missing file is fine
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.StandardLogger().WithField("kind", raffle.KindOf(err).String()).WithError(err).Error("command failed")
		cancel()
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch raffle.KindOf(err) {
	case raffle.KindConfigMissing:
		return 2
	case raffle.KindOnChainReject:
		return 3
	}
	return 1
}
