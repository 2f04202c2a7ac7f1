// Package cmd implements the communicator CLI commands using Cobra.
//
// Available commands:
//   - get, post, put, delete: Send a request relative to the base URL
//   - init: Create a communicator.yaml in the current directory
//   - version: Show communicator version information
//   - completion: Generate shell completion scripts
//
// Settings come from communicator.yaml/json, COMMUNICATOR_* environment
// variables, an optional .env file and command line flags, in increasing
// order of precedence. APP_DEBUG switches failure reports to stdout.
package cmd
