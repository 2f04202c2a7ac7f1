// Package communicator issues GET, POST, PUT and DELETE requests against a
// fixed base address with a selectable body encoding.
//
// Parameters are sent as:
//   - a query string for GET
//   - a JSON document after UseJSON(true)
//   - multipart/form-data parts after UseFiles(true)
//   - an application/x-www-form-urlencoded body otherwise
//
// A Communicator never changes after New. UseJSON, UseFiles and Using return
// a derived value carrying the encoding for the next call, so the original
// can be shared between goroutines and every call on it starts from the
// defaults.
//
// Failed requests (4xx, 5xx, transport errors) are reported to stdout in
// debug mode or to the error log otherwise, then returned as *Error. With
// PolicyExit the process exits after the report instead.
package communicator
