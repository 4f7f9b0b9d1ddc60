// Package scaffold materializes a starter metagrid workspace from embedded
// templates: a configuration file, a placeholder sample list, and one
// sbatch job script per pipeline stage.
package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"text/template"

	"github.com/avolkov/metagrid/internal/pipeline"
)

//go:embed templates
var templatesFS embed.FS

// Params fills the configuration template.
type Params struct {
	WorkDir   string
	Partition string
	Account   string
}

// Write materializes the starter workspace under dir: metagrid.hcl, a
// placeholder samples.txt, and scripts/ with one job script per stage.
// Existing files are left untouched unless force is set. The returned list
// names the files actually written.
func Write(dir string, p Params, force bool) ([]string, error) {
	var written []string

	write := func(rel string, data []byte, mode os.FileMode) error {
		dst := filepath.Join(dir, rel)
		if !force {
			if _, err := os.Stat(dst); err == nil {
				return nil
			}
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(dst, data, mode); err != nil {
			return err
		}
		written = append(written, dst)
		return nil
	}

	tmpl, err := template.ParseFS(templatesFS, "templates/metagrid.hcl.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing config template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, p); err != nil {
		return nil, fmt.Errorf("rendering config template: %w", err)
	}
	if err := write("metagrid.hcl", buf.Bytes(), 0o644); err != nil {
		return nil, err
	}

	samples, err := templatesFS.ReadFile("templates/samples.txt")
	if err != nil {
		return nil, err
	}
	if err := write("samples.txt", samples, 0o644); err != nil {
		return nil, err
	}

	for _, stage := range pipeline.Stages() {
		script := stage.Definition().Script
		data, err := templatesFS.ReadFile(path.Join("templates/scripts", script))
		if err != nil {
			return nil, fmt.Errorf("no embedded script for stage %s: %w", stage, err)
		}
		if err := write(filepath.Join("scripts", script), data, 0o755); err != nil {
			return nil, err
		}
	}
	return written, nil
}
