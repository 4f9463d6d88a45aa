package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"notesuite/pkg/notesuite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := notesuite.Main(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
