package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/abdul-hamid-achik/communicator/packages/communicator"
	"github.com/abdul-hamid-achik/communicator/packages/http"
	applog "github.com/abdul-hamid-achik/communicator/packages/log"
	"github.com/abdul-hamid-achik/communicator/packages/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type requestFlags struct {
	data     []string
	files    []string
	json     bool
	multi    bool
	encoding string
	selector string
	output   string
}

func newRequestCmd(method string) *cobra.Command {
	flags := &requestFlags{}
	name := strings.ToLower(method)

	cmd := &cobra.Command{
		Use:   name + " <path>",
		Short: fmt.Sprintf("Send a %s request", method),
		Long: fmt.Sprintf(`Send a %[1]s request to <path>, resolved against the base URL.

Examples:
  communicator %[2]s /users -b https://api.example.com -d page=2
  communicator %[2]s /users -d name=Ada --json
  communicator %[2]s /upload -F avatar=@./me.png -F note=hello
  communicator %[2]s /users/1 --select data.name`, method, name),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, method, args[0], flags)
		},
	}

	cmd.Flags().StringArrayVarP(&flags.data, "data", "d", nil, "Parameter key=value, repeatable (repeated keys send multiple values)")
	cmd.Flags().StringArrayVarP(&flags.files, "form", "F", nil, "Multipart parameter key=value or key=@file, repeatable (implies --files)")
	cmd.Flags().BoolVar(&flags.json, "json", false, "Send parameters as a JSON document")
	cmd.Flags().BoolVar(&flags.multi, "files", false, "Send parameters as multipart/form-data")
	cmd.Flags().StringVar(&flags.encoding, "encoding", "", "Force an encoding: query, json, multipart, form")
	cmd.Flags().StringVar(&flags.selector, "select", "", "Print only the value at this gjson path of a JSON response")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "console", "Output format: console, json")

	return cmd
}

func runRequest(cmd *cobra.Command, method, path string, flags *requestFlags) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return &exitError{code: ExitConfigError, err: err}
	}

	params, err := parseParams(flags.data, flags.files)
	if err != nil {
		return &exitError{code: ExitUsageError, err: err}
	}

	formatter, err := output.New(flags.output,
		output.WithWriter(cmd.OutOrStdout()),
		output.WithVerbose(verboseFlag > 0),
		output.WithNoColor(cfg.GetNoColor()),
		output.WithSelect(flags.selector),
	)
	if err != nil {
		return &exitError{code: ExitUsageError, err: err}
	}

	logger := applog.New(cfg.LogLevel, cmd.ErrOrStderr())
	defer applog.Sync(logger)

	c, err := buildCommunicator(cfg, logger, cmd.OutOrStdout())
	if err != nil {
		return &exitError{code: ExitConfigError, err: err}
	}
	defer c.CloseIdleConnections()

	builder, err := configureEncoding(c, flags)
	if err != nil {
		return &exitError{code: ExitUsageError, err: err}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("sending request", zap.String("method", method), zap.String("path", path), zap.String("encoding", builder.Encoding(method).String()))

	start := time.Now()
	resp, err := builder.Do(ctx, communicator.Intent{
		Method:   method,
		Path:     path,
		Params:   params,
		Encoding: builder.Encoding(method),
	})
	if err != nil {
		formatter.FormatError(err)
		if e, ok := communicator.AsError(err); ok && e.HasResponse() {
			e.Response.Body.Close()
		}
		return &exitError{code: exitCodeFor(err), err: err, reported: true}
	}

	target := path
	if resp.Request != nil {
		target = resp.Request.URL.String()
	}

	r, err := http.ReadResponse(resp, time.Since(start))
	if err != nil {
		return &exitError{code: ExitNetworkError, err: fmt.Errorf("reading response: %w", err)}
	}

	if err := formatter.FormatExchange(&output.Exchange{Method: method, URL: target, Response: r}); err != nil {
		return &exitError{code: ExitUsageError, err: err}
	}
	return nil
}

// configureEncoding applies --json, --files/-F and --encoding to c.
func configureEncoding(c *communicator.Communicator, flags *requestFlags) (*communicator.Communicator, error) {
	builder := c.UseJSON(flags.json).UseFiles(flags.multi || len(flags.files) > 0)

	if flags.encoding != "" {
		enc, err := communicator.ParseEncoding(flags.encoding)
		if err != nil {
			return nil, err
		}
		builder = builder.Using(enc)
	}
	return builder, nil
}

// parseParams builds request parameters from -d key=value and -F key=value
// or key=@file arguments. A key given more than once collects its values.
func parseParams(data, files []string) (communicator.Params, error) {
	params := communicator.Params{}

	for _, d := range data {
		key, value, err := splitParam(d)
		if err != nil {
			return nil, err
		}
		switch existing := params[key].(type) {
		case nil:
			params[key] = value
		case string:
			params[key] = []string{existing, value}
		case []string:
			params[key] = append(existing, value)
		}
	}

	for _, f := range files {
		key, value, err := splitParam(f)
		if err != nil {
			return nil, err
		}
		if !strings.HasPrefix(value, "@") {
			params[key] = value
			continue
		}

		path := strings.TrimPrefix(value, "@")
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s for %q: %w", path, key, err)
		}
		params[key] = communicator.File{Filename: filepath.Base(path), Content: content}
	}

	return params, nil
}

func splitParam(raw string) (string, string, error) {
	key, value, found := strings.Cut(raw, "=")
	if !found || key == "" {
		return "", "", fmt.Errorf("invalid parameter %q (expected key=value)", raw)
	}
	return key, value, nil
}
