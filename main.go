package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"grokmcp/config"
	"grokmcp/mcp"
	"grokmcp/provider"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const (
	Version = "v0.01.00"
	License = "Apache-2.0"
)

var configPath string

func main() {
	// .env never overrides variables already set in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
	}

	rootCmd := &cobra.Command{
		Use:   "grokmcp",
		Short: "MCP server for the xAI Grok API",
		Long: `grokmcp exposes the xAI Grok API to MCP clients as nine tools:
list_models, chat, chat_with_reasoning, chat_with_vision, generate_image,
live_search, stateful_chat, retrieve_stateful_response, delete_stateful_response.

The API key is read from XAI_API_KEY (a .env file in the working directory is
loaded first). Without arguments the server runs on stdio.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), "stdio", "")
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config.toml (default: $GROKMCP_CONFIG or ~/.config/grokmcp/config.toml)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(callCmd())
	rootCmd.AddCommand(toolsCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(versionCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.ResolvePath(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	config.InitDebugLog(cfg)
	if config.DebugLog != nil && cfg.Source != "" {
		config.DebugLog.Printf("Loaded config from %s", cfg.Source)
	}
	return cfg, nil
}

func newServer() (*mcp.Server, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if !cfg.HasAPIKey() {
		fmt.Fprintf(os.Stderr, "Warning: %s is not set; tool calls will fail until it is\n", config.EnvAPIKey)
	}

	p, err := provider.NewProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}
	return mcp.NewServer(p, cfg, Version)
}

func serve(ctx context.Context, transport, addr string) error {
	s, err := newServer()
	if err != nil {
		return err
	}

	switch transport {
	case "stdio":
		return s.ServeStdio(ctx, os.Stdin, os.Stdout)
	case "http":
		return s.ListenHTTP(ctx, addr)
	default:
		return fmt.Errorf("unknown transport %q (want stdio or http)", transport)
	}
}

func serveCmd() *cobra.Command {
	var transport string
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), transport, addr)
		},
	}

	cmd.Flags().StringVarP(&transport, "transport", "t", "stdio", "Transport: stdio or http")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address for the http transport")

	return cmd
}

func callCmd() *cobra.Command {
	var rawArgs string

	cmd := &cobra.Command{
		Use:   "call <tool>",
		Short: "Invoke one tool in-process and print the result",
		Example: `  grokmcp call chat --args '{"prompt": "2+2?"}'
  grokmcp call stateful_chat --args '{"prompt": "and again", "response_id": "resp_..."}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var toolArgs map[string]any
			if rawArgs != "" {
				if err := json.Unmarshal([]byte(rawArgs), &toolArgs); err != nil {
					return fmt.Errorf("--args must be a JSON object: %w", err)
				}
			}

			s, err := newServer()
			if err != nil {
				return err
			}
			c, err := mcp.NewClient(cmd.Context(), s)
			if err != nil {
				return err
			}
			defer c.Close()

			res, err := c.CallTool(cmd.Context(), args[0], toolArgs)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), mcp.ResultText(res))
			if res.IsError {
				return errors.New("tool call failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&rawArgs, "args", "a", "", "Tool arguments as a JSON object")

	return cmd
}

func toolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the published tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, tool := range mcp.Tools(cfg.Models) {
				fmt.Fprintf(w, "%s\t%s\n", tool.Name, tool.Description)
			}
			return w.Flush()
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the API key by listing models",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			res, err := provider.CheckProvider(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "OK: %s answered in %s\n", res.BaseURL, res.Elapsed.Round(time.Millisecond))
			return nil
		},
	}
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration helpers",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "template",
		Short: "Print a config.toml with the defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), config.GenerateConfigTemplate())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location in use",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.ResolvePath(configPath))
		},
	})

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "grokmcp %s (%s)\n", Version, License)
		},
	}
}
