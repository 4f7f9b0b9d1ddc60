package cli

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/avolkov/metagrid/internal/config"
	"github.com/avolkov/metagrid/internal/ctxlog"
	"github.com/avolkov/metagrid/internal/scaffold"
)

// initOptions defines flags for the init command.
type initOptions struct {
	workDir   string
	partition string
	account   string
	force     bool
}

func newInitOptions() *initOptions {
	return &initOptions{}
}

// addFlags binds the init command's flags.
func (o *initOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.workDir, "work-dir", "work", "work directory to write into the generated configuration")
	cmd.Flags().StringVar(&o.partition, "partition", "", "scheduler partition to write into the generated configuration")
	cmd.Flags().StringVar(&o.account, "account", "", "accounting identifier to write into the generated configuration")
	cmd.Flags().BoolVar(&o.force, "force", false, "overwrite files that already exist")
}

// newCmdInit creates the init command.
func newCmdInit(global *rootOptions) *cobra.Command {
	o := newInitOptions()

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a starter configuration, sample list, job scripts and directory layout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return o.run(cmd, dir)
		},
	}
	o.addFlags(cmd)
	return cmd
}

func (o *initOptions) run(cmd *cobra.Command, dir string) error {
	logger := ctxlog.FromContext(cmd.Context())

	written, err := scaffold.Write(dir, scaffold.Params{
		WorkDir:   o.workDir,
		Partition: o.partition,
		Account:   o.account,
	}, o.force)
	if err != nil {
		return fmt.Errorf("failed to write workspace files: %w", err)
	}
	logger.Debug("Workspace scaffolded.", "dir", dir, "files", len(written))

	out := cmd.OutOrStdout()
	if len(written) == 0 {
		fmt.Fprintln(out, "nothing to do, all files already exist (use --force to overwrite)")
		return nil
	}
	for _, f := range written {
		fmt.Fprintf(out, "wrote %s\n", f)
	}

	cfg, err := config.Load(cmd.Context(), filepath.Join(dir, "metagrid.hcl"))
	if err != nil {
		return err
	}
	if err := cfg.EnsureLayout(); err != nil {
		return fmt.Errorf("failed to create pipeline directories: %w", err)
	}

	color.New(color.FgGreen).Fprintln(out, "workspace ready: add your samples to samples.txt, then run 'metagrid validate'")
	return nil
}
