package main

import (
	"context"
	"fmt"
	"os"
)

type application interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Done() <-chan os.Signal
}

// run blocks until ctx is cancelled or the app requests shutdown. Stop gets a
// context without deadline so the configured shutdown timeout applies.
func run(ctx context.Context, app application) error {
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("failed to start storefront: %w", err)
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	if err := app.Stop(context.Background()); err != nil {
		return fmt.Errorf("failed to stop storefront: %w", err)
	}
	return nil
}
