// Package http provides the transport client behind the communicator.
//
// It wraps the standard library's http package with additional features:
//   - Default headers applied to every request
//   - Redirect handling
//   - TLS verification switch and proxy support
//   - Optional request pacing
//   - Buffered response values and wire dumps for diagnostics
//   - Multipart form data support
package http
