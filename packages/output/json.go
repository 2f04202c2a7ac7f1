package output

import (
	"encoding/json"
	"io"
	"os"

	"github.com/abdul-hamid-achik/communicator/packages/communicator"
)

// JSONOutput represents the complete JSON output structure
type JSONOutput struct {
	Request  JSONRequest   `json:"request"`
	Response *JSONResponse `json:"response,omitempty"`
	Error    *JSONError    `json:"error,omitempty"`
}

// JSONRequest represents request details
type JSONRequest struct {
	Method string `json:"method"`
	URL    string `json:"url"`
}

// JSONResponse represents response details
type JSONResponse struct {
	StatusCode int               `json:"statusCode"`
	Status     string            `json:"status"`
	Headers    map[string]string `json:"headers,omitempty"`
	Duration   float64           `json:"duration"`
	Body       any               `json:"body,omitempty"`
}

// JSONError represents a failed request
type JSONError struct {
	Kind       string `json:"kind,omitempty"`
	StatusCode int    `json:"statusCode,omitempty"`
	Message    string `json:"message"`
}

// JSONFormatter writes one JSON document per exchange
type JSONFormatter struct {
	writer io.Writer
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func WithJSONWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

func (f *JSONFormatter) FormatExchange(ex *Exchange) error {
	resp := ex.Response
	out := JSONOutput{
		Request: JSONRequest{Method: ex.Method, URL: ex.URL},
		Response: &JSONResponse{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Headers:    resp.Headers,
			Duration:   float64(resp.Duration.Microseconds()) / 1000,
		},
	}

	// JSON bodies are embedded as values, anything else as a string
	if body, err := resp.BodyJSON(); err == nil && resp.IsJSON() {
		out.Response.Body = body
	} else if len(resp.Body) > 0 {
		out.Response.Body = resp.BodyString()
	}

	return f.encode(out)
}

func (f *JSONFormatter) FormatError(err error) {
	out := JSONOutput{Error: &JSONError{Message: err.Error()}}
	if e, ok := communicator.AsError(err); ok {
		out.Request = JSONRequest{Method: e.Method, URL: e.URL}
		out.Error.Kind = e.Kind.String()
		out.Error.StatusCode = e.StatusCode
	}
	_ = f.encode(out)
}

func (f *JSONFormatter) encode(v any) error {
	enc := json.NewEncoder(f.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
