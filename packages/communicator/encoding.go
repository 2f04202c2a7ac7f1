package communicator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"sort"
	"strings"

	transport "github.com/abdul-hamid-achik/communicator/packages/http"
	"github.com/google/uuid"
)

// Encoding selects how request parameters are serialized.
type Encoding int

const (
	encodingAuto Encoding = iota
	// EncodingQuery sends parameters as the URL query string
	EncodingQuery
	// EncodingJSON sends parameters as a single JSON document
	EncodingJSON
	// EncodingMultipart sends one multipart/form-data part per parameter
	EncodingMultipart
	// EncodingForm sends parameters as an application/x-www-form-urlencoded body
	EncodingForm
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

func (e Encoding) String() string {
	switch e {
	case EncodingQuery:
		return "query"
	case EncodingJSON:
		return "json"
	case EncodingMultipart:
		return "multipart"
	case EncodingForm:
		return "form"
	default:
		return "auto"
	}
}

// ParseEncoding maps a name as printed by Encoding.String back to its value.
// "" and "auto" leave the choice to the verb and the builder toggles.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return encodingAuto, nil
	case "query":
		return EncodingQuery, nil
	case "json":
		return EncodingJSON, nil
	case "multipart", "files":
		return EncodingMultipart, nil
	case "form":
		return EncodingForm, nil
	}
	return encodingAuto, fmt.Errorf("unknown encoding %q (expected query, json, multipart or form)", s)
}

// Params maps parameter names to values. Query and form encodings accept
// scalars, []byte, []string and []any; nil values are skipped. Multipart
// additionally accepts File and io.Reader values.
type Params map[string]any

// File is raw content sent as a multipart file part.
type File struct {
	Filename string
	Content  []byte
}

// Intent describes a single request. It is built by each verb call and
// dropped once the call returns.
type Intent struct {
	Method   string
	Path     string
	Params   Params
	Encoding Encoding
}

// BuildRequest assembles the outgoing request for in without sending it.
func (c *Communicator) BuildRequest(ctx context.Context, in Intent) (*http.Request, error) {
	method := strings.ToUpper(in.Method)

	target, err := c.resolve(in.Path)
	if err != nil {
		return nil, err
	}

	enc := in.Encoding
	if enc == encodingAuto {
		enc = c.Encoding(method)
	}

	var (
		body        io.Reader
		contentType string
	)

	switch enc {
	case EncodingQuery:
		if len(in.Params) > 0 {
			values, err := encodeValues(in.Params)
			if err != nil {
				return nil, err
			}
			target.RawQuery = values.Encode()
		}
	case EncodingJSON:
		if len(in.Params) > 0 {
			doc, err := jsonDocument(in.Params)
			if err != nil {
				return nil, err
			}
			data, err := json.Marshal(doc)
			if err != nil {
				return nil, fmt.Errorf("encoding json body: %w", err)
			}
			body = bytes.NewReader(data)
			contentType = contentTypeJSON
		}
	case EncodingMultipart:
		buf, ct, err := transport.BuildMultipartBody(multipartParts(in.Params))
		if err != nil {
			return nil, fmt.Errorf("encoding multipart body: %w", err)
		}
		body = buf
		contentType = ct
	case EncodingForm:
		values, err := encodeValues(in.Params)
		if err != nil {
			return nil, err
		}
		body = strings.NewReader(values.Encode())
		contentType = contentTypeForm
	default:
		return nil, fmt.Errorf("unsupported encoding %d", enc)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, err
	}

	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.requestIDHeader != "" {
		req.Header.Set(c.requestIDHeader, uuid.NewString())
	}

	return req, nil
}

// resolve applies RFC 3986 reference resolution of path against the base address.
func (c *Communicator) resolve(path string) (*url.URL, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}
	return c.baseURL.ResolveReference(ref), nil
}

func encodeValues(params Params) (url.Values, error) {
	values := url.Values{}
	for key, value := range params {
		switch v := value.(type) {
		case nil:
		case string:
			values.Add(key, v)
		case []byte:
			values.Add(key, string(v))
		case []string:
			for _, s := range v {
				values.Add(key, s)
			}
		case []any:
			for _, item := range v {
				values.Add(key, fmt.Sprint(item))
			}
		case File, *File, io.Reader:
			return nil, fmt.Errorf("parameter %q holds file content; enable UseFiles to send it", key)
		default:
			values.Add(key, fmt.Sprint(v))
		}
	}
	return values, nil
}

// jsonDocument copies params with raw byte values turned into strings, so
// they are sent as text rather than base64. File content has no JSON form.
func jsonDocument(params Params) (map[string]any, error) {
	doc := make(map[string]any, len(params))
	for k, v := range params {
		switch b := v.(type) {
		case []byte:
			doc[k] = string(b)
		case File, *File, io.Reader:
			return nil, fmt.Errorf("parameter %q holds file content; send it with UseFiles and UseJSON disabled", k)
		default:
			doc[k] = v
		}
	}
	return doc, nil
}

// multipartParts writes one part per parameter in key order. Slices become
// one part per element under the same name and nil values are skipped, as
// in query and form encoding.
func multipartParts(params Params) []transport.Part {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]transport.Part, 0, len(keys))
	for _, key := range keys {
		switch v := params[key].(type) {
		case nil:
		case []string:
			for _, item := range v {
				parts = append(parts, transport.Part{Name: key, Content: strings.NewReader(item)})
			}
		case []any:
			for _, item := range v {
				if item != nil {
					parts = append(parts, multipartPart(key, item))
				}
			}
		default:
			parts = append(parts, multipartPart(key, v))
		}
	}
	return parts
}

func multipartPart(key string, value any) transport.Part {
	part := transport.Part{Name: key}

	switch v := value.(type) {
	case File:
		part.Filename = v.Filename
		part.Content = bytes.NewReader(v.Content)
	case *File:
		part.Filename = v.Filename
		part.Content = bytes.NewReader(v.Content)
	case []byte:
		part.Content = bytes.NewReader(v)
	case string:
		part.Content = strings.NewReader(v)
	case io.Reader:
		// *os.File and friends carry a name worth keeping
		if named, ok := v.(interface{ Name() string }); ok {
			part.Filename = filepath.Base(named.Name())
		}
		part.Content = v
	default:
		part.Content = strings.NewReader(fmt.Sprint(v))
	}

	return part
}
