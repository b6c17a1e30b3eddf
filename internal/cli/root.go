// Package cli implements the rdcheckout command line tool
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/alexbotov/rdcheckout/internal/config"
	"github.com/alexbotov/rdcheckout/internal/logger"
	"github.com/alexbotov/rdcheckout/pkg/checkout"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Build information, set with -ldflags
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

type appKey struct{}

// app holds the state shared by every subcommand for one invocation
type app struct {
	cfg    *config.Config
	logger zerolog.Logger
	// stdin is shared by the secret prompt and payload reading
	stdin *bufio.Reader
}

type options struct {
	configPath   string
	promptSecret bool
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "rdcheckout",
		Short:         "rdcheckout talks to the RD Card checkout gateway",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath, cmd.Flags())
			if err != nil {
				return err
			}
			stdin := bufio.NewReader(cmd.InOrStdin())
			if opts.promptSecret {
				secret, err := readSecret(cmd, stdin)
				if err != nil {
					return fmt.Errorf("failed to read api secret: %w", err)
				}
				cfg.Gateway.APISecret = secret
			}

			a := &app{
				cfg:    cfg,
				logger: logger.InitWithWriter(cfg.Logging, cmd.ErrOrStderr()),
				stdin:  stdin,
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, a))
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "path to a configuration file")
	pf.String("api-key", "", "gateway API key (RDCHECKOUT_GATEWAY_API_KEY)")
	pf.String("api-secret", "", "gateway API secret used for signing (RDCHECKOUT_GATEWAY_API_SECRET)")
	pf.BoolVar(&opts.promptSecret, "prompt-secret", false, "read the API secret from the terminal")
	pf.String("environment", string(checkout.EnvironmentSandbox), "gateway environment: sandbox or live")
	pf.String("base-url", "", "override the gateway base URL")
	pf.Duration("timeout", checkout.DefaultTimeout, "request timeout")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "json", "log format: json or text")
	pf.Bool("metrics", false, "instrument gateway requests and log the collected metrics")

	root.AddCommand(newSessionCmd(), newPaymentCmd(), newWebhookCmd(), newVersionCmd())
	return root
}

// Execute runs the root command and returns the process exit code
func Execute() int {
	root := NewRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		reportError(root.ErrOrStderr(), err)
		return 1
	}
	return 0
}

func appFrom(cmd *cobra.Command) (*app, error) {
	a, ok := cmd.Context().Value(appKey{}).(*app)
	if !ok {
		return nil, errors.New("command context is not initialised")
	}
	return a, nil
}

// reportError prints err, including the gateway status and body for API errors
func reportError(w io.Writer, err error) {
	var apiErr *checkout.APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintf(w, "Error: %s\n", apiErr.Message)
		if apiErr.Status != 0 {
			fmt.Fprintf(w, "Status: %d\n", apiErr.Status)
		}
		if apiErr.Data != nil {
			if body, jerr := encodePretty(apiErr.Data); jerr == nil {
				fmt.Fprintf(w, "Response: %s\n", body)
			}
		}
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the version of this binary",
		// version needs no configuration
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "version: %s\ncommit: %s\nbuild time: %s\n", Version, Commit, BuildTime)
		},
	}
}
