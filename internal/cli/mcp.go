package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/ppiankov/textprobe/internal/mcpserver"
	"github.com/ppiankov/textprobe/internal/pipeline"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve analyze_text and check_claim as MCP tools over stdio",
	Long: `Mcp runs a Model Context Protocol server on stdin/stdout with two tools:
  analyze_text  similarity analysis of {"text", "threshold"}
  check_claim   claim check of {"claim"}

Logs go to stderr so the protocol stream stays clean.

Example client configuration:
  {"command": "textprobe", "args": ["mcp"]}`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	p, err := pipeline.NewPipeline(cfg, logger, nil)
	if err != nil {
		return err
	}
	checker, err := pipeline.NewClaimChecker(cfg, logger, nil)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return mcpserver.New(p, checker, cfg.Analysis.Threshold, Version, logger.Named("mcp")).Run(ctx)
}
