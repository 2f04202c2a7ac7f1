// Package config handles configuration loading and management for communicator.
//
// It provides functionality for:
//   - Loading configuration from communicator.json or communicator.yaml files
//   - Default configuration values
//   - Merging file settings with command line overrides
//   - Expanding ${VAR} references from the environment
package config
