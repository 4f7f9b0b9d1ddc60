package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/avolkov/metagrid/internal/ctxlog"
)

// version is stamped into --version output.
const version = "0.3.0"

// rootOptions defines the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string

	// logW receives structured logs; user-facing results go to the
	// command's own output writer.
	logW io.Writer
}

func newRootOptions(logW io.Writer) *rootOptions {
	return &rootOptions{logW: logW}
}

// addFlags binds the persistent flags to the root command.
func (o *rootOptions) addFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&o.configPath, "config", "c", "metagrid.hcl", "path to the configuration file")
	cmd.PersistentFlags().StringVar(&o.logLevel, "log-level", "info", "logging level: 'debug', 'info', 'warn' or 'error'")
	cmd.PersistentFlags().StringVar(&o.logFormat, "log-format", "text", "log output format: 'text' or 'json'")
}

// NewCmdRoot creates the metagrid root command. Structured logs are written
// to logW.
func NewCmdRoot(logW io.Writer) *cobra.Command {
	o := newRootOptions(logW)

	cmd := &cobra.Command{
		Use:   "metagrid",
		Short: "Sequence a metagenomics pipeline on a batch scheduler",
		Long: `Metagrid drives a six-stage metagenomics pipeline (download, quality
control, trimming, host removal, taxonomic classification, functional
profiling) on a batch scheduler. Each invocation handles one stage: it
checks that the stage's prerequisites have produced their outputs for
every sample, then submits the stage's job script with the configured
resources. Completion is always re-derived from the filesystem, so runs
can be repeated and resumed safely.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(o.logLevel, o.logFormat, o.logW)
			if err != nil {
				return &ExitError{Code: 2, Message: err.Error()}
			}
			cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
			return nil
		},
	}
	o.addFlags(cmd)

	cmd.AddCommand(newCmdRun(o))
	cmd.AddCommand(newCmdValidate(o))
	cmd.AddCommand(newCmdStatus(o))
	cmd.AddCommand(newCmdInit(o))

	return cmd
}
