package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httputil"
)

// DumpRequest renders req as it goes out on the wire. The body is re-read
// through GetBody, so a request that was already sent can still be dumped.
func DumpRequest(req *http.Request) string {
	if req == nil {
		return ""
	}

	out := req.Clone(context.Background())
	out.Body = nil
	if req.GetBody != nil {
		if body, err := req.GetBody(); err == nil {
			out.Body = body
		}
	}

	dump, err := httputil.DumpRequestOut(out, out.Body != nil)
	if err != nil {
		return fmt.Sprintf("%s %s (dump failed: %v)", req.Method, req.URL, err)
	}
	return string(dump)
}

// DumpResponse renders resp including its body. resp.Body is replaced with
// an in-memory copy so it stays readable for the caller.
func DumpResponse(resp *http.Response) string {
	if resp == nil {
		return ""
	}

	dump, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return fmt.Sprintf("%s (dump failed: %v)", resp.Status, err)
	}
	return string(dump)
}
