// Package env handles environment files and variable lookups for communicator.
//
// It provides functionality for:
//   - Loading environment files (.env, .env.local, etc.)
//   - Typed lookups with defaults (APP_DEBUG, COMMUNICATOR_*)
//   - Collecting default headers from prefixed variables
package env
