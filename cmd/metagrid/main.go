package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/avolkov/metagrid/internal/cli"
)

// main is the entrypoint for the metagrid application.
func main() {
	os.Exit(run(context.Background(), os.Stdout, os.Stderr, os.Args[1:]))
}

// run encapsulates the process lifecycle for easier testing: it executes
// the command line and maps errors to exit codes.
func run(ctx context.Context, out, errW io.Writer, args []string) int {
	if err := cli.Run(ctx, out, errW, args); err != nil {
		fmt.Fprintln(errW, "Error:", err)
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		return 1
	}
	return 0
}
