package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/communicator/packages/core/config"
	"github.com/spf13/cobra"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter communicator.yaml",
	Long: `Write a starter communicator.yaml in the current directory.

The file sets a base URL, default headers and the transport settings that
every request command reads. Values may reference environment variables
as ${VAR}.

Examples:
  communicator init
  communicator init --force`,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing file")
}

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	configFile := filepath.Join(cwd, "communicator.yaml")
	if !forceInit {
		if _, err := os.Stat(configFile); err == nil {
			return &exitError{code: ExitConfigError, err: fmt.Errorf("file already exists: %s (use --force to overwrite)", configFile)}
		}
	}

	cfg := config.DefaultConfig()
	cfg.BaseURL = "https://api.example.com"
	cfg.Headers = map[string]string{
		"Accept":        "application/json",
		"Authorization": "Bearer ${API_TOKEN}",
		"User-Agent":    "communicator/" + version,
	}
	cfg.FollowRedirects = config.BoolPtr(true)
	cfg.ValidateSSL = config.BoolPtr(true)
	cfg.RequestIDHeader = "X-Request-ID"

	if err := cfg.SaveConfig(configFile); err != nil {
		return &exitError{code: ExitConfigError, err: fmt.Errorf("failed to create config file: %w", err)}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)
	fmt.Fprintf(cmd.OutOrStdout(), "\nRun 'communicator get /' to send a first request.\n")

	return nil
}
