package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/tatianab/bby/internal/cli"
)

// Plays a story in the TUI straight away. The full command line lives in
// cmd/bby.
//
//	go run . path/to/story.toml
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <story file>\n", os.Args[0])
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Play(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
