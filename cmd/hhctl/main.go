// Command hhctl manages a House Hunters deployment from the terminal.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"househunters/client"
)

var version = "1.0.0"

const defaultURL = "http://localhost:8080/api"

var (
	apiClient *client.Client
	flagURL   string
	flagFmt   string
	flagToken string
	flagWait  time.Duration
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "hhctl",
		Short:   "House Hunters admin CLI",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupClient()
		},
		SilenceUsage: true,
	}
	root.SetVersionTemplate("{{.Version}}\n")

	root.PersistentFlags().StringVar(&flagURL, "url", defaultURL, "API base URL including /api (env: HH_API_URL)")
	root.PersistentFlags().StringVar(&flagFmt, "format", "table", "Output format: table|json")
	root.PersistentFlags().StringVar(&flagToken, "token-file", "", "Where the login token is kept (default: user config dir)")
	root.PersistentFlags().DurationVar(&flagWait, "timeout", 30*time.Second, "HTTP timeout")

	createAdmin := newCreateAdminCmd()
	createAdmin.PersistentPreRunE = func(*cobra.Command, []string) error { return nil } // talks to the database

	root.AddCommand(createAdmin)
	root.AddCommand(newLoginCmd(), newLogoutCmd(), newWhoamiCmd())
	root.AddCommand(newPropertiesCmd())
	root.AddCommand(newStatsCmd(), newHealthCmd())
	return root
}

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func setupClient() error {
	if flagURL == defaultURL {
		if v := strings.TrimSpace(os.Getenv("HH_API_URL")); v != "" {
			flagURL = v
		}
	}
	path := flagToken
	if path == "" {
		p, err := client.DefaultTokenPath()
		if err != nil {
			return fmt.Errorf("token path: %w", err)
		}
		path = p
	}
	apiClient = client.New(flagURL,
		client.WithSession(client.NewSession(client.NewFileStore(path))),
		client.WithTimeout(flagWait),
	)
	return nil
}
