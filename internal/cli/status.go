package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/avolkov/metagrid/internal/config"
	"github.com/avolkov/metagrid/internal/driver"
	"github.com/avolkov/metagrid/internal/pipeline"
)

// statusOptions defines flags for the status command.
type statusOptions struct {
	stage string
}

func newStatusOptions() *statusOptions {
	return &statusOptions{}
}

// addFlags binds the status command's flags.
func (o *statusOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.stage, "stage", "", "list the missing samples for one stage instead of the summary table")
}

// newCmdStatus creates the status command.
func newCmdStatus(global *rootOptions) *cobra.Command {
	o := newStatusOptions()

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show per-stage completion for the configured sample set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, global)
		},
	}
	o.addFlags(cmd)
	return cmd
}

func (o *statusOptions) run(cmd *cobra.Command, global *rootOptions) error {
	ctx := cmd.Context()
	cfg, err := config.Load(ctx, global.configPath)
	if err != nil {
		return err
	}

	d := driver.New(cfg, nil, nil)
	statuses, err := d.Status(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	if o.stage != "" {
		stage, err := pipeline.ParseStage(o.stage)
		if err != nil {
			return err
		}
		// Statuses come back in execution order, one per stage.
		s := statuses[stage]
		if s.Complete {
			fmt.Fprintf(out, "stage %s is %s for all %d samples\n", stage, green("complete"), s.Total)
			return nil
		}
		fmt.Fprintf(out, "stage %s is %s, %d of %d samples are missing outputs:\n",
			stage, red("incomplete"), len(s.Missing), s.Total)
		for _, sample := range s.Missing {
			fmt.Fprintf(out, "  %s\n", sample)
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STAGE\tSTATUS\tSAMPLES")
	for _, s := range statuses {
		state := green("complete")
		if !s.Complete {
			state = red("incomplete")
		}
		fmt.Fprintf(w, "%s\t%s\t%d/%d\n", s.Stage, state, s.Total-len(s.Missing), s.Total)
	}
	return w.Flush()
}
