package communicator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	transport "github.com/abdul-hamid-achik/communicator/packages/http"
	applog "github.com/abdul-hamid-achik/communicator/packages/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoServer replies with a JSON summary of what it received.
func echoServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}

		summary := map[string]any{
			"method":      r.Method,
			"path":        r.URL.Path,
			"query":       r.URL.RawQuery,
			"accept":      r.Header.Get("Accept"),
			"contentType": r.Header.Get("Content-Type"),
		}

		if r.Header.Get("Content-Type") != "" && r.Header.Get("Content-Type") != "application/json" {
			if err := r.ParseMultipartForm(1 << 20); err != nil && err != http.ErrNotMultipart {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			form := map[string]string{}
			for k := range r.PostForm {
				form[k] = r.PostForm.Get(k)
			}
			if r.MultipartForm != nil {
				for k, files := range r.MultipartForm.File {
					f, err := files[0].Open()
					if err != nil {
						http.Error(w, err.Error(), http.StatusInternalServerError)
						return
					}
					data, _ := io.ReadAll(f)
					f.Close()
					form[k] = files[0].Filename + ":" + string(data)
				}
			}
			summary["form"] = form
		} else {
			body, _ := io.ReadAll(r.Body)
			summary["body"] = string(body)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(summary)
	}))
}

func decodeSummary(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var summary map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	return summary
}

func TestIntegration_DefaultTransport(t *testing.T) {
	server := echoServer(t)
	defer server.Close()

	c, err := New(server.URL, map[string]string{"Accept": "application/json"},
		WithLogger(applog.New("error", io.Discard)),
		WithClientOptions(transport.WithFollowRedirects(false)),
	)
	require.NoError(t, err)
	defer c.CloseIdleConnections()

	ctx := context.Background()

	resp, err := c.Get(ctx, "/users", Params{"page": 1})
	require.NoError(t, err)
	got := decodeSummary(t, resp)
	assert.Equal(t, "GET", got["method"])
	assert.Equal(t, "page=1", got["query"])
	assert.Equal(t, "application/json", got["accept"])

	resp, err = c.Post(ctx, "/users", Params{"name": "Ada"})
	require.NoError(t, err)
	got = decodeSummary(t, resp)
	assert.Equal(t, map[string]any{"name": "Ada"}, got["form"])

	resp, err = c.UseJSON(true).Put(ctx, "/users/1", Params{"name": "Ada"})
	require.NoError(t, err)
	got = decodeSummary(t, resp)
	assert.JSONEq(t, `{"name":"Ada"}`, got["body"].(string))

	resp, err = c.UseFiles(true).Post(ctx, "/upload", Params{
		"note": "hi",
		"file": File{Filename: "a.txt", Content: []byte("hello")},
	})
	require.NoError(t, err)
	got = decodeSummary(t, resp)
	assert.Equal(t, map[string]any{"note": "hi", "file": "a.txt:hello"}, got["form"])
}

func TestIntegration_NotFound(t *testing.T) {
	server := echoServer(t)
	defer server.Close()

	c, err := New(server.URL, nil, WithLogger(applog.New("error", io.Discard)))
	require.NoError(t, err)
	defer c.CloseIdleConnections()

	resp, err := c.Get(context.Background(), "/missing", nil)
	assert.Nil(t, resp)
	require.True(t, IsClientError(err))

	e, _ := AsError(err)
	body, err := io.ReadAll(e.Response.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "not found")
}

func TestIntegration_ConcurrentUse(t *testing.T) {
	server := echoServer(t)
	defer server.Close()

	c, err := New(server.URL, nil, WithLogger(applog.New("error", io.Discard)))
	require.NoError(t, err)
	defer c.CloseIdleConnections()

	var wg sync.WaitGroup
	errs := make(chan error, 20)

	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			resp, err := c.UseJSON(true).Post(context.Background(), "/json", Params{"i": i})
			if err != nil {
				errs <- err
				return
			}
			defer resp.Body.Close()
			var summary map[string]any
			if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
				errs <- err
				return
			}
			if summary["contentType"] != "application/json" {
				errs <- fmt.Errorf("json call sent %v", summary["contentType"])
			}
		}(i)
		go func(i int) {
			defer wg.Done()
			resp, err := c.Post(context.Background(), "/form", Params{"i": i})
			if err != nil {
				errs <- err
				return
			}
			defer resp.Body.Close()
			var summary map[string]any
			if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
				errs <- err
				return
			}
			if summary["contentType"] != "application/x-www-form-urlencoded" {
				errs <- fmt.Errorf("form call sent %v", summary["contentType"])
			}
		}(i)
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
