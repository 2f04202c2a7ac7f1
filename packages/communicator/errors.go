package communicator

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidBaseURL is returned by New when the base address is not an
// absolute http or https URL.
var ErrInvalidBaseURL = errors.New("communicator: invalid base URL")

// Kind classifies a failed request.
type Kind int

const (
	// KindEncoding means the request could not be assembled and was never sent
	KindEncoding Kind = iota
	// KindTransport means no response was received
	KindTransport
	// KindClient means the server answered with a 4xx status
	KindClient
	// KindServer means the server answered with a 5xx status
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindEncoding:
		return "encoding"
	case KindTransport:
		return "transport"
	case KindClient:
		return "client"
	case KindServer:
		return "server"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is returned for every failed call. Response is set for KindClient
// and KindServer; its body has been buffered and is still readable.
type Error struct {
	Kind       Kind
	Method     string
	URL        string
	StatusCode int

	Request  *http.Request
	Response *http.Response

	// Wire renderings of Request and Response, empty when absent.
	RequestDump  string
	ResponseDump string

	Err error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("communicator: %s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("communicator: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HasResponse reports whether the server answered at all.
func (e *Error) HasResponse() bool {
	return e.Response != nil
}

// AsError unwraps err into an *Error.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func IsClientError(err error) bool {
	e, ok := AsError(err)
	return ok && e.Kind == KindClient
}

func IsServerError(err error) bool {
	e, ok := AsError(err)
	return ok && e.Kind == KindServer
}

func IsTransportError(err error) bool {
	e, ok := AsError(err)
	return ok && e.Kind == KindTransport
}

func kindForStatus(status int) (Kind, bool) {
	switch {
	case status >= 500:
		return KindServer, true
	case status >= 400:
		return KindClient, true
	}
	return 0, false
}
