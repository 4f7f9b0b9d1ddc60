// Package cli builds the metagrid command tree, translates flags into the
// driver's configuration and mode, and handles process-level concerns like
// exit codes. All user-facing output goes through the command's writers so
// tests can capture it.
package cli
