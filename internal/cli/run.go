package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/avolkov/metagrid/internal/config"
	"github.com/avolkov/metagrid/internal/driver"
	"github.com/avolkov/metagrid/internal/pipeline"
	"github.com/avolkov/metagrid/internal/scheduler"
)

// runOptions defines flags for the run command.
type runOptions struct {
	stage          string
	mode           string
	dryRun         bool
	resume         bool
	validateConfig bool
}

func newRunOptions() *runOptions {
	return &runOptions{}
}

// addFlags binds the run command's flags.
func (o *runOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.stage, "stage", "", "pipeline stage to run: "+strings.Join(pipeline.StageNames(), ", "))
	cmd.Flags().StringVar(&o.mode, "mode", "array", "submission mode: 'array' runs one task per sample, 'original' one sequential task")
	cmd.Flags().BoolVar(&o.dryRun, "dry-run", false, "build the submission request but do not submit it")
	cmd.Flags().BoolVar(&o.resume, "resume", false, "skip submission when the stage's outputs already exist")
	cmd.Flags().BoolVar(&o.validateConfig, "validate-config", false, "validate the configuration and exit without touching any stage")
	// the possible error returned from MarkFlagRequired is `no such flag`
	cmd.MarkFlagRequired("stage") //nolint:errcheck
}

// newCmdRun creates the run command.
func newCmdRun(global *rootOptions) *cobra.Command {
	o := newRunOptions()

	cmd := &cobra.Command{
		Use:   "run --stage <name>",
		Short: "Submit one pipeline stage to the scheduler",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, global)
		},
	}
	o.addFlags(cmd)
	return cmd
}

func (o *runOptions) run(cmd *cobra.Command, global *rootOptions) error {
	mode := driver.Mode{
		DryRun:       o.dryRun,
		Resume:       o.resume,
		ValidateOnly: o.validateConfig,
	}
	switch o.mode {
	case "array":
		mode.Parallel = true
	case "original":
	default:
		return &ExitError{Code: 2, Message: fmt.Sprintf("invalid --mode %q: must be 'original' or 'array'", o.mode)}
	}

	ctx := cmd.Context()
	cfg, err := config.Load(ctx, global.configPath)
	if err != nil {
		return err
	}

	d := driver.New(cfg, scheduler.NewSlurm(cfg.Scheduler.SbatchPath), nil)
	result, err := d.Run(ctx, o.stage, mode)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case mode.ValidateOnly:
		color.New(color.FgGreen).Fprintln(out, "configuration OK")
	case result.Skipped:
		color.New(color.FgYellow).Fprintf(out, "stage %s is already complete, nothing submitted\n", result.Stage)
	case result.DryRun:
		fmt.Fprintf(out, "dry run: would invoke\n  sbatch %s\n", strings.Join(result.Request.Args(), " "))
	default:
		color.New(color.FgGreen).Fprintf(out, "stage %s submitted as job %s\n", result.Stage, result.JobID)
	}
	return nil
}
