// Package pipeline defines the closed set of metagenomics pipeline stages
// with their static metadata (job scripts, prerequisites, expected outputs,
// resource defaults), the sample list loader, and the filesystem completion
// predicate that decides whether a stage has already produced its outputs.
package pipeline
