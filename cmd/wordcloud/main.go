// Command wordcloud lays out weighted words without overlap and renders
// them as SVG, PNG or PDF.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/wordcloud/internal/cli"
	errs "github.com/matzehuels/wordcloud/pkg/errors"
)

// Exit codes: 1 for failures, 2 for rejected input or configuration,
// 130 after an interrupt.
const (
	exitFailure     = 1
	exitInvalid     = 2
	exitInterrupted = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.New(os.Stderr, cli.LogInfo).RootCommand()
	err := root.ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case errs.IsInvalid(err):
		fmt.Fprintln(os.Stderr, "Error:", err)
		return exitInvalid
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
		return exitFailure
	}
}
