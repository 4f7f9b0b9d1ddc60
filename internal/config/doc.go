// Package config defines the driver configuration model and loads it from a
// single HCL file: where the pipeline inputs live on the shared filesystem,
// how to reach the batch scheduler, and per-stage overrides of the built-in
// stage defaults.
//
// Loading is split in two. Load decodes the file into the model and rejects
// structural problems (unparseable HCL, missing required blocks, unknown
// stage labels), while Validate performs the semantic checks (paths that
// must exist, resource values that must parse) and reports every problem it
// finds rather than stopping at the first.
package config
