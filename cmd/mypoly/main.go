package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mypoly/internal/cli"
	perrors "github.com/matzehuels/mypoly/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		os.Exit(report(err))
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// The level is only known after flag parsing.
	preRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if preRun != nil {
			return preRun(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}

// report prints err and returns the exit code: 130 on interrupt, 2 for
// rejected input and 1 for everything else.
func report(err error) int {
	if errors.Is(err, context.Canceled) {
		return 130
	}
	code := perrors.GetCode(err)
	if code == "" {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	fmt.Fprintf(os.Stderr, "Error: %s (%s)\n", perrors.UserMessage(err), code)
	if code == perrors.ErrCodeInternal || code == perrors.ErrCodeTimeout {
		return 1
	}
	return 2
}
