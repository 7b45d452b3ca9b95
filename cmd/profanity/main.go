// Command profanity detects profanity in short messages.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/profanity/internal/adapters/driven/config/env"
	"github.com/custodia-labs/profanity/internal/adapters/driving/cli"
	"github.com/custodia-labs/profanity/internal/logger"
)

// Set by the release build.
var version = "dev"

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run wires the CLI and returns the command error after deferred cleanup has run.
func run() error {
	defer logger.Sync()

	if err := env.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetInitializer(buildServices)
	return cli.Execute(ctx)
}
