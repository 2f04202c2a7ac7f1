package communicator

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	transport "github.com/abdul-hamid-achik/communicator/packages/http"
	applog "github.com/abdul-hamid-achik/communicator/packages/log"
	"go.uber.org/zap"
)

// Doer sends a prepared request. *transport.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Policy decides what happens after a failed request has been reported.
type Policy int

const (
	// PolicyReturn hands the *Error back to the caller
	PolicyReturn Policy = iota
	// PolicyExit terminates the process with status 1
	PolicyExit
)

// Communicator sends requests relative to a base address with a fixed set
// of default headers.
type Communicator struct {
	baseURL *url.URL
	headers map[string]string
	client  Doer

	jsonBody bool
	files    bool
	forced   Encoding

	debug           bool
	policy          Policy
	out             io.Writer
	logger          *zap.Logger
	exit            func(int)
	requestIDHeader string
	clientOpts      []transport.ClientOption
}

type Option func(*Communicator)

// WithTransport replaces the default transport client.
func WithTransport(d Doer) Option {
	return func(c *Communicator) {
		c.client = d
	}
}

// WithClientOptions configures the default transport client.
// Ignored when WithTransport is given.
func WithClientOptions(opts ...transport.ClientOption) Option {
	return func(c *Communicator) {
		c.clientOpts = append(c.clientOpts, opts...)
	}
}

// WithDebug switches failure reports from the error log to the output writer.
func WithDebug(debug bool) Option {
	return func(c *Communicator) {
		c.debug = debug
	}
}

func WithFailurePolicy(p Policy) Option {
	return func(c *Communicator) {
		c.policy = p
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Communicator) {
		c.logger = logger
	}
}

// WithOutput sets where debug reports are written. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *Communicator) {
		c.out = w
	}
}

// WithExitFunc replaces os.Exit for PolicyExit.
func WithExitFunc(fn func(int)) Option {
	return func(c *Communicator) {
		c.exit = fn
	}
}

// WithRequestID stamps every request with a fresh UUID in header.
func WithRequestID(header string) Option {
	return func(c *Communicator) {
		c.requestIDHeader = header
	}
}

// New returns a Communicator for baseURL. headers are sent with every request.
func New(baseURL string, headers map[string]string, opts ...Option) (*Communicator, error) {
	if err := transport.ValidateURL(baseURL); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}

	c := &Communicator{
		baseURL: base,
		headers: make(map[string]string, len(headers)),
		policy:  PolicyReturn,
		out:     os.Stdout,
		exit:    os.Exit,
	}
	for k, v := range headers {
		c.headers[k] = v
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = applog.New("error", os.Stderr)
	}
	if c.client == nil {
		clientOpts := append([]transport.ClientOption{transport.WithDefaultHeaders(c.headers)}, c.clientOpts...)
		c.client = transport.NewClient(clientOpts...)
	}

	return c, nil
}

// BaseURL returns the base address requests are resolved against.
func (c *Communicator) BaseURL() string {
	return c.baseURL.String()
}

// UseJSON returns a derived builder that sends parameters as JSON on every
// call made through it. JSON takes precedence over UseFiles. c itself is not
// changed, so calls on c keep the verb's default encoding.
func (c *Communicator) UseJSON(enabled bool) *Communicator {
	d := c.derive()
	d.jsonBody = enabled
	return d
}

// UseFiles returns a derived builder that sends parameters as
// multipart/form-data, one part per parameter, on every call made through
// it. c itself is not changed.
func (c *Communicator) UseFiles(enabled bool) *Communicator {
	d := c.derive()
	d.files = enabled
	return d
}

// Using returns a builder with an explicit encoding that overrides both the
// verb default and the UseJSON/UseFiles toggles.
func (c *Communicator) Using(enc Encoding) *Communicator {
	d := c.derive()
	d.forced = enc
	return d
}

func (c *Communicator) derive() *Communicator {
	d := *c
	return &d
}

// Encoding reports the encoding a call with method would use.
func (c *Communicator) Encoding(method string) Encoding {
	switch {
	case c.forced != encodingAuto:
		return c.forced
	case method == http.MethodGet:
		return EncodingQuery
	case c.jsonBody:
		return EncodingJSON
	case c.files:
		return EncodingMultipart
	default:
		return EncodingForm
	}
}

func (c *Communicator) Get(ctx context.Context, path string, params Params) (*http.Response, error) {
	return c.call(ctx, http.MethodGet, path, params)
}

func (c *Communicator) Post(ctx context.Context, path string, params Params) (*http.Response, error) {
	return c.call(ctx, http.MethodPost, path, params)
}

func (c *Communicator) Put(ctx context.Context, path string, params Params) (*http.Response, error) {
	return c.call(ctx, http.MethodPut, path, params)
}

func (c *Communicator) Delete(ctx context.Context, path string, params Params) (*http.Response, error) {
	return c.call(ctx, http.MethodDelete, path, params)
}

func (c *Communicator) call(ctx context.Context, method, path string, params Params) (*http.Response, error) {
	return c.Do(ctx, Intent{
		Method:   method,
		Path:     path,
		Params:   params,
		Encoding: c.Encoding(method),
	})
}

// Do sends in and returns the response untouched on 1xx-3xx. Any other
// outcome is reported and handed to the failure policy.
func (c *Communicator) Do(ctx context.Context, in Intent) (*http.Response, error) {
	req, err := c.BuildRequest(ctx, in)
	if err != nil {
		target := in.Path
		if u, rerr := c.resolve(in.Path); rerr == nil {
			target = u.String()
		}
		return nil, &Error{Kind: KindEncoding, Method: in.Method, URL: target, Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, c.fail(&Error{
			Kind:    KindTransport,
			Method:  req.Method,
			URL:     req.URL.String(),
			Request: req,
			Err:     err,
		})
	}

	if kind, failed := kindForStatus(resp.StatusCode); failed {
		return nil, c.fail(&Error{
			Kind:       kind,
			Method:     req.Method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Request:    req,
			Response:   resp,
		})
	}

	return resp, nil
}

// CloseIdleConnections releases pooled connections of the default transport.
func (c *Communicator) CloseIdleConnections() {
	if closer, ok := c.client.(interface{ CloseIdleConnections() }); ok {
		closer.CloseIdleConnections()
	}
}
