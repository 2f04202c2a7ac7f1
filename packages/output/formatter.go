package output

import (
	"fmt"

	transport "github.com/abdul-hamid-achik/communicator/packages/http"
)

// Exchange is one request and the response it produced.
type Exchange struct {
	Method   string
	URL      string
	Response *transport.Response
}

// Formatter interface for all output formatters
type Formatter interface {
	FormatExchange(ex *Exchange) error
	FormatError(err error)
}

// New returns the formatter registered under name.
func New(name string, opts ...ConsoleOption) (Formatter, error) {
	switch name {
	case "", "console":
		return NewConsoleFormatter(opts...), nil
	case "json":
		f := NewConsoleFormatter(opts...)
		return NewJSONFormatter(WithJSONWriter(f.writer)), nil
	}
	return nil, fmt.Errorf("unknown output format %q (expected console or json)", name)
}
