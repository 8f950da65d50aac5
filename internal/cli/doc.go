// Package cli parses command-line arguments into the app's configuration
// and defines the ExitError type carrying process exit codes.
package cli
