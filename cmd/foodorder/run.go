package main

import (
	"context"
	"fmt"
	"os"
)

type application interface {
	Start(context.Context) error
	Stop(context.Context) error
	Done() <-chan os.Signal
}

func run(ctx context.Context, app application) error {
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("start application: %w", err)
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	if err := app.Stop(context.Background()); err != nil {
		return fmt.Errorf("stop application: %w", err)
	}
	return nil
}
