package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zen-systems/bioroute/pkg/adapter"
	"github.com/zen-systems/bioroute/pkg/catalog"
	"github.com/zen-systems/bioroute/pkg/config"
	"github.com/zen-systems/bioroute/pkg/invoker"
	"github.com/zen-systems/bioroute/pkg/pipeline"
	"github.com/zen-systems/bioroute/pkg/reasoner"
	"github.com/zen-systems/bioroute/pkg/router"
	"github.com/zen-systems/bioroute/pkg/server"
	"github.com/zen-systems/bioroute/pkg/tools"
	"github.com/zen-systems/bioroute/pkg/toolserver"
)

var catalogFlag string

func main() {
	rootCmd := &cobra.Command{
		Use:   "bioroute",
		Short: "LLM-routed tool-augmented answering for biological and chemical queries",
		Long: `Bioroute answers natural-language queries in two model stages: a router
decides which computational tools to invoke and with what arguments, the
tools are executed against a remote catalog, and a reasoner synthesizes a
grounded answer from the collected results.`,
	}

	rootCmd.PersistentFlags().StringVar(&catalogFlag, "catalog", "", "tool server URL (overrides config)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(askCmd())
	rootCmd.AddCommand(toolsCmd())
	rootCmd.AddCommand(modelsCmd())
	rootCmd.AddCommand(toolsServeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var addrFlag string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP front end",
		Long: `Serves POST /prompt, GET /health, and GET /tools, backed by the
configured model adapters and tool server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			co, cat, err := buildCoordinator(cfg, log)
			if err != nil {
				return err
			}

			addr := cfg.ListenAddr
			if addrFlag != "" {
				addr = addrFlag
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(co, cat, log).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addrFlag, "addr", "", "listen address (overrides config)")

	return cmd
}

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask [prompt]",
		Short: "Answer a single query and print the assembled response as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			co, _, err := buildCoordinator(cfg, log)
			if err != nil {
				return err
			}

			resp, err := co.Answer(context.Background(), args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		},
	}
}

func toolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tools available from the tool server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			cat, err := catalog.NewHTTPClient(catalogURL(cfg))
			if err != nil {
				return err
			}

			descriptors, err := cat.ListTools(context.Background())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDESCRIPTION")
			for _, d := range descriptors {
				fmt.Fprintf(w, "%s\t%s\n", d.Name, d.Description)
			}
			return w.Flush()
		},
	}
}

func modelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List available adapters and models",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			adapters, err := createAdapters(cfg)
			if err != nil {
				return fmt.Errorf("failed to create adapters: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PROVIDER\tMODELS\tSTATUS")
			for _, name := range []string{"anthropic", "deepseek", "google", "openai", "mock"} {
				status := "no key"
				models := "-"
				if a, ok := adapters[name]; ok {
					status = "ready"
					models = ""
					for i, m := range a.Models() {
						if i > 0 {
							models += ", "
						}
						models += m
					}
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", name, models, status)
			}
			return w.Flush()
		},
	}
}

func toolsServeCmd() *cobra.Command {
	var addrFlag string
	var pathFlag string

	cmd := &cobra.Command{
		Use:   "tools-serve",
		Short: "Run the mock bio-tools server",
		Long: `Serves the built-in deterministic bio tools (molecular_properties,
binding_affinity, toxicity_prediction, pubchem_lookup) over JSON-RPC for
local development and testing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()

			srv := toolserver.New(tools.Default(), log)
			mux := http.NewServeMux()
			mux.Handle("POST "+pathFlag, srv)

			log.Info("tool server listening", "addr", addrFlag, "path", pathFlag)
			return http.ListenAndServe(addrFlag, mux)
		},
	}

	cmd.Flags().StringVar(&addrFlag, "addr", ":9000", "listen address")
	cmd.Flags().StringVar(&pathFlag, "path", "/mcp", "JSON-RPC endpoint path")

	return cmd
}

// buildCoordinator wires the catalog client, stage adapters, and pipeline
// stages from configuration.
func buildCoordinator(cfg *config.Config, log *slog.Logger) (*pipeline.Coordinator, catalog.Client, error) {
	adapters, err := createAdapters(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create adapters: %w", err)
	}

	routerAdapter, ok := adapters[cfg.Router.Adapter]
	if !ok {
		return nil, nil, fmt.Errorf("router adapter %q not available (missing API key?)", cfg.Router.Adapter)
	}
	reasonerAdapter, ok := adapters[cfg.Reasoner.Adapter]
	if !ok {
		return nil, nil, fmt.Errorf("reasoner adapter %q not available (missing API key?)", cfg.Reasoner.Adapter)
	}

	cat, err := catalog.NewHTTPClient(catalogURL(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create catalog client: %w", err)
	}

	co := pipeline.New(
		cat,
		router.New(routerAdapter, cfg.Router.Model, log),
		invoker.New(cat, log),
		reasoner.New(reasonerAdapter, cfg.Reasoner.Model, log),
		log,
	)
	return co, cat, nil
}

func catalogURL(cfg *config.Config) string {
	if catalogFlag != "" {
		return catalogFlag
	}
	return cfg.CatalogURL
}

func createAdapters(cfg *config.Config) (map[string]adapter.Adapter, error) {
	adapters := make(map[string]adapter.Adapter)

	if cfg.AnthropicAPIKey != "" {
		a, err := adapter.NewAnthropicAdapter(cfg.AnthropicAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create anthropic adapter: %w", err)
		}
		adapters["anthropic"] = a
	}

	if cfg.OpenAIAPIKey != "" {
		a, err := adapter.NewOpenAIAdapter(cfg.OpenAIAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai adapter: %w", err)
		}
		adapters["openai"] = a
	}

	if cfg.GoogleAPIKey != "" {
		a, err := adapter.NewGoogleAdapter(cfg.GoogleAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create google adapter: %w", err)
		}
		adapters["google"] = a
	}

	if cfg.DeepSeekAPIKey != "" {
		a, err := adapter.NewDeepSeekAdapter(cfg.DeepSeekAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create deepseek adapter: %w", err)
		}
		adapters["deepseek"] = a
	}

	adapters["mock"] = adapter.NewMockAdapter()

	return adapters, nil
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}
