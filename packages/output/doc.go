// Package output renders responses and failures for the communicator CLI.
//
// Supported output formats:
//   - Console: Human-readable colored terminal output
//   - JSON: Machine-readable JSON output
//
// Both formatters implement the Formatter interface.
package output
