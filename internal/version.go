// Package internal holds shared metadata for the lingoscope command.
package internal

// Version is the current lingoscope release.
const Version = "0.1.0"
