package cli

import (
	"context"
	"errors"
	"io"
)

// ExitError is an error that carries a specific process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Run executes the metagrid command line with the given arguments, writing
// results to out and diagnostics to errW. A nil return means exit code 0;
// an *ExitError names its own code; any other error means exit code 1.
func Run(ctx context.Context, out, errW io.Writer, args []string) error {
	root := NewCmdRoot(errW)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errW)

	if err := root.ExecuteContext(ctx); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr
		}
		return err
	}
	return nil
}
