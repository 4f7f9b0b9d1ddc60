// Package driver contains the core sequencing logic: it decides whether a
// requested pipeline stage may run, builds its submission request, and
// hands the request to the scheduler, decoupled from any specific
// entrypoint like a CLI.
//
// Nothing is persisted between invocations. Completion is re-derived from
// the filesystem on every run, so the driver can be re-run at any point
// and will act only on what is actually missing.
package driver
