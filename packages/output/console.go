package output

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"

	"github.com/abdul-hamid-achik/communicator/packages/communicator"
	transport "github.com/abdul-hamid-achik/communicator/packages/http"
	"github.com/fatih/color"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

type ConsoleFormatter struct {
	writer     io.Writer
	verbose    bool
	noColor    bool
	selectPath string
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

// WithSelect prints only the value at a gjson path of a JSON body.
func WithSelect(path string) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.selectPath = path
	}
}

func (f *ConsoleFormatter) FormatExchange(ex *Exchange) error {
	resp := ex.Response

	if f.selectPath != "" {
		return f.formatSelection(resp)
	}

	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Fprintf(f.writer, "%s %s %s\n", statusColor(resp.StatusCode)(resp.Status), bold(ex.Method+" "+ex.URL), cyan(fmt.Sprintf("(%dms)", resp.DurationMs())))

	if f.verbose {
		keys := make([]string, 0, len(resp.Headers))
		for k := range resp.Headers {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(f.writer, "%s: %s\n", cyan(k), resp.Headers[k])
		}
	}

	if len(resp.Body) == 0 {
		return nil
	}
	fmt.Fprintln(f.writer)
	f.writeBody(resp.Body, resp.IsJSON())
	return nil
}

func (f *ConsoleFormatter) formatSelection(resp *transport.Response) error {
	if !gjson.ValidBytes(resp.Body) {
		return fmt.Errorf("response body is not JSON, cannot select %q", f.selectPath)
	}

	result := gjson.GetBytes(resp.Body, f.selectPath)
	if !result.Exists() {
		return fmt.Errorf("no value at %q", f.selectPath)
	}

	if result.IsObject() || result.IsArray() {
		f.writeBody([]byte(result.Raw), true)
		return nil
	}
	fmt.Fprintln(f.writer, result.String())
	return nil
}

func (f *ConsoleFormatter) writeBody(body []byte, isJSON bool) {
	if isJSON && gjson.ValidBytes(body) {
		out := pretty.Pretty(body)
		if !f.noColor && !color.NoColor {
			out = pretty.Color(out, nil)
		}
		_, _ = f.writer.Write(out)
		return
	}

	_, _ = f.writer.Write(body)
	if body[len(body)-1] != '\n' {
		fmt.Fprintln(f.writer)
	}
}

func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()

	if e, ok := communicator.AsError(err); ok {
		fmt.Fprintf(f.writer, "%s %s request failed (%s): %v\n", red("Error:"), e.Kind, e.Method+" "+e.URL, errorDetail(e))
		return
	}
	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
}

func errorDetail(e *communicator.Error) string {
	if e.HasResponse() {
		return statusColor(e.StatusCode)(e.Response.Status)
	}
	if e.StatusCode != 0 {
		return statusColor(e.StatusCode)(fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode)))
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func statusColor(status int) func(a ...interface{}) string {
	switch {
	case status >= 200 && status < 300:
		return color.New(color.FgGreen).SprintFunc()
	case status >= 300 && status < 400:
		return color.New(color.FgYellow).SprintFunc()
	default:
		return color.New(color.FgRed).SprintFunc()
	}
}
