package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abdul-hamid-achik/communicator/packages/communicator"
	"github.com/abdul-hamid-achik/communicator/packages/core/config"
	"github.com/abdul-hamid-achik/communicator/packages/core/env"
	"github.com/abdul-hamid-achik/communicator/packages/http"
	applog "github.com/abdul-hamid-achik/communicator/packages/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// HeaderEnvPrefix names variables that contribute default headers.
const HeaderEnvPrefix = "COMMUNICATOR_HEADER_"

// loadSettings resolves the effective configuration: config file, then
// environment, then flags that were set explicitly.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	if envFileFlag != "" {
		if _, err := env.LoadAndExportDotEnv(envFileFlag); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if _, err := env.LoadAndExportDotEnv(".env"); err != nil {
			return nil, err
		}
	}

	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	fromEnv := &config.Config{Headers: env.Headers(HeaderEnvPrefix)}
	if os.Getenv(env.DebugVar) != "" {
		fromEnv.Debug = config.BoolPtr(env.Debug())
	}

	headers, err := parseHeaders(headerFlags)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	fromFlags := &config.Config{
		BaseURL:         baseURLFlag,
		Headers:         headers,
		Proxy:           proxyFlag,
		RateLimit:       rateFlag,
		RequestIDHeader: requestIDFlag,
	}
	if verboseFlag > 0 {
		fromFlags.LogLevel = applog.LevelForVerbosity(verboseFlag)
	}
	if flags.Changed("debug") {
		fromFlags.Debug = config.BoolPtr(debugFlag)
	}
	if flags.Changed("exit-on-error") || exitOnErrorFlag {
		fromFlags.ExitOnError = config.BoolPtr(exitOnErrorFlag)
	}
	if flags.Changed("insecure") || insecureFlag {
		fromFlags.ValidateSSL = config.BoolPtr(!insecureFlag)
	}
	if flags.Changed("no-color") || noColorFlag {
		fromFlags.NoColor = config.BoolPtr(noColorFlag)
	}

	cfg = cfg.Merge(fromEnv).Merge(fromFlags).ExpandEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseHeaders turns "Name: value" strings into a header map.
func parseHeaders(raw []string) (map[string]string, error) {
	headers := make(map[string]string, len(raw))
	for _, h := range raw {
		name, value, found := strings.Cut(h, ":")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			return nil, fmt.Errorf("invalid header %q (expected \"Name: value\")", h)
		}
		headers[name] = strings.TrimSpace(value)
	}
	return headers, nil
}

func buildCommunicator(cfg *config.Config, logger *zap.Logger, out io.Writer) (*communicator.Communicator, error) {
	policy := communicator.PolicyReturn
	if cfg.GetExitOnError() {
		policy = communicator.PolicyExit
	}

	opts := []communicator.Option{
		communicator.WithDebug(cfg.GetDebug()),
		communicator.WithFailurePolicy(policy),
		communicator.WithLogger(logger),
		communicator.WithOutput(out),
		communicator.WithClientOptions(
			http.WithFollowRedirects(cfg.GetFollowRedirects()),
			http.WithMaxRedirects(cfg.MaxRedirects),
			http.WithValidateSSL(cfg.GetValidateSSL()),
			http.WithProxy(cfg.Proxy),
			http.WithRateLimit(cfg.RateLimit),
		),
	}
	if cfg.RequestIDHeader != "" {
		opts = append(opts, communicator.WithRequestID(cfg.RequestIDHeader))
	}

	return communicator.New(cfg.BaseURL, cfg.Headers, opts...)
}
