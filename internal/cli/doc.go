// Package cli provides command-line interface configuration and flag
// handling for the lingoscope command.
package cli
