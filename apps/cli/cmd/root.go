package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/abdul-hamid-achik/communicator/packages/core/env"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	baseURLFlag     string
	headerFlags     []string
	configFlag      string
	envFileFlag     string
	debugFlag       bool
	exitOnErrorFlag bool
	insecureFlag    bool
	proxyFlag       string
	rateFlag        float64
	requestIDFlag   string
	noColorFlag     bool
	verboseFlag     int
)

var rootCmd = &cobra.Command{
	Use:   "communicator",
	Short: "Send HTTP requests against a base URL",
	Long: `communicator sends GET, POST, PUT and DELETE requests relative to a
configured base URL, with parameters encoded as a query string, a form
body, a JSON document or multipart parts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			if !exitErr.reported {
				fmt.Fprintln(os.Stderr, "Error:", exitErr.err)
			}
			os.Exit(exitErr.code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(ExitUsageError)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&baseURLFlag, "base-url", "b", env.String("COMMUNICATOR_BASE_URL", ""), "Base URL requests are resolved against (env: COMMUNICATOR_BASE_URL)")
	flags.StringArrayVarP(&headerFlags, "header", "H", nil, `Default header "Name: value", repeatable`)
	flags.StringVar(&configFlag, "config", env.String("COMMUNICATOR_CONFIG", ""), "Path to config file (env: COMMUNICATOR_CONFIG)")
	flags.StringVar(&envFileFlag, "env-file", env.String("COMMUNICATOR_ENV_FILE", ""), "Path to .env file loaded before anything else (env: COMMUNICATOR_ENV_FILE)")
	flags.BoolVar(&debugFlag, "debug", env.Debug(), "Print failed requests and responses to stdout instead of the error log (env: APP_DEBUG)")
	flags.BoolVar(&exitOnErrorFlag, "exit-on-error", env.Bool("COMMUNICATOR_EXIT_ON_ERROR", false), "Terminate right after reporting a failed request (env: COMMUNICATOR_EXIT_ON_ERROR)")
	flags.BoolVarP(&insecureFlag, "insecure", "k", env.Bool("COMMUNICATOR_INSECURE", false), "Disable SSL certificate validation (env: COMMUNICATOR_INSECURE)")
	flags.StringVar(&proxyFlag, "proxy", env.String("COMMUNICATOR_PROXY", ""), "Proxy URL for HTTP requests (env: COMMUNICATOR_PROXY)")
	flags.Float64Var(&rateFlag, "rate", env.Float("COMMUNICATOR_RATE", 0), "Maximum requests per second, 0 for unlimited (env: COMMUNICATOR_RATE)")
	flags.StringVar(&requestIDFlag, "request-id", env.String("COMMUNICATOR_REQUEST_ID", ""), "Header that receives a fresh UUID on every request (env: COMMUNICATOR_REQUEST_ID)")
	flags.BoolVar(&noColorFlag, "no-color", env.Bool("COMMUNICATOR_NO_COLOR", false), "Disable colored output (env: COMMUNICATOR_NO_COLOR)")
	flags.CountVarP(&verboseFlag, "verbose", "v", "Verbose output (-v shows headers and info logs, -vv debug logs)")

	rootCmd.AddCommand(newRequestCmd("GET"))
	rootCmd.AddCommand(newRequestCmd("POST"))
	rootCmd.AddCommand(newRequestCmd("PUT"))
	rootCmd.AddCommand(newRequestCmd("DELETE"))
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
}
