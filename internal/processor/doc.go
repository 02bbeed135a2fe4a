// Package processor orchestrates the analysis workflow for the command
// line: it wires the local cache, remote store, generation service and
// session together and implements the top-level operations.
package processor
