package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"clipdeck/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd(&env{ctx: ctx, runner: app.ExecRunner{}, lookPath: app.LookPath})
	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, errRunFailed) {
			stop()
			os.Exit(1)
		}
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
