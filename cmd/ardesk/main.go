package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/boddenberg/ardesk-go/internal/config"
	"github.com/boddenberg/ardesk-go/internal/infra/client"
	"github.com/boddenberg/ardesk-go/internal/infra/observability"
	"github.com/boddenberg/ardesk-go/internal/infra/resilience"
	"github.com/boddenberg/ardesk-go/internal/render/term"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Build information (set by the linker)
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, newApp(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// execute runs one command line and releases the app afterwards, also
// when the command failed.
func execute(ctx context.Context, a *app, args []string, stdout, stderr io.Writer) error {
	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.close(closeCtx)

	return err
}

// app is the wiring shared by every subcommand, built once the flags are
// parsed.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	metrics  *observability.Metrics
	api      *client.Client
	shutdown func(context.Context) error

	initTracer func(endpoint, serviceName string) (func(context.Context) error, error)
}

func newApp() *app {
	return &app{initTracer: observability.InitTracer}
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.logger = observability.NewLogger(cfg.LogLevel)
	a.logger.Debug("configuration loaded",
		zap.String("api_base_url", cfg.APIBaseURL),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Int("max_read_retries", cfg.MaxReadRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Int("max_concurrency", cfg.MaxConcurrency),
		zap.Bool("tracing", cfg.OTLPEndpoint != ""),
	)

	a.shutdown, err = a.initTracer(cfg.OTLPEndpoint, "ardesk")
	if err != nil {
		return fmt.Errorf("failed to init tracer: %w", err)
	}

	a.metrics = observability.NewMetrics()
	a.api = client.New(
		&http.Client{Timeout: cfg.HTTPTimeout},
		cfg.APIBaseURL,
		resilience.NewCircuitBreaker("receivables-api"),
		resilience.Config{
			MaxReadRetries: cfg.MaxReadRetries,
			InitialBackoff: cfg.InitialBackoff,
			MaxConcurrency: cfg.MaxConcurrency,
		},
		a.metrics,
		a.logger,
	)
	return nil
}

// close flushes the tracer and the logger. Safe to call more than once,
// and before init.
func (a *app) close(ctx context.Context) {
	if a.shutdown != nil {
		if err := a.shutdown(ctx); err != nil && a.logger != nil {
			a.logger.Warn("tracer shutdown failed", zap.Error(err))
		}
		a.shutdown = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *app) dialog() *term.Dialog {
	return term.NewStdDialog(a.cfg.AssumeYes)
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ardesk",
		Short: "Accounts-receivable desk: customers, sales, payments and balances",
		Long: `ardesk talks to the accounts-receivable API and shows customers with their
balance (credit, debt or settled) and the receivables ledger.

Each command loads fresh data from the API, applies the action and reloads.
Use 'ardesk serve' for the same pages in a browser.`,
		Example: `  ardesk clientes
  ardesk clientes criar --nome "Ana" --cpf-cnpj 123.456.789-00
  ardesk contas venda --cliente 2 --valor 49,90 --vencimento 2024-05-10
  ardesk contas receber 7 --sim
  ardesk serve --port 8080`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default ./ardesk.yaml)")
	flags.String("api-url", "http://localhost:5000", "base URL of the receivables API")
	flags.Duration("timeout", 0, "HTTP timeout for API calls (0 = none)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.BoolP("sim", "s", false, "answer yes to every confirmation")

	rootCmd.AddCommand(newCustomersCommand(a))
	rootCmd.AddCommand(newReceivablesCommand(a))
	rootCmd.AddCommand(newServeCommand(a))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		// No configuration or API needed.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ardesk %s (commit: %s)\n", version, commit)
		},
	}
}
