package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/textprobe/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	llmProvider string
	llmModel    string
	wikiBaseURL string
)

// factcheckCmd represents the factcheck command
var factcheckCmd = &cobra.Command{
	Use:   "factcheck <claim>",
	Short: "Check how well Wikipedia summaries cover a claim",
	Long: `Factcheck extracts keywords from the claim, looks them up on Wikipedia,
and scores each summary by word overlap and source authority.

The verdict (PROBABLE, UNCERTAIN, UNLIKELY, INSUFFICIENT EVIDENCE) describes
how well the claim is supported, not whether it is true. An optional LLM
summary is written separately and never changes the verdict.

Example:
  textprobe factcheck "Python foi criado por Guido van Rossum"
  textprobe factcheck "Marie Curie discovered polonium" --md claim.md
  textprobe factcheck "..." --llm-provider ollama --llm-model llama3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFactcheck,
}

func init() {
	rootCmd.AddCommand(factcheckCmd)

	factcheckCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	factcheckCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	factcheckCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM summary provider (openai, ollama); empty disables")
	factcheckCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	factcheckCmd.Flags().StringVar(&wikiBaseURL, "wikipedia", "", "Wikipedia base URL (e.g. https://pt.wikipedia.org)")
	factcheckCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runFactcheck(cmd *cobra.Command, args []string) error {
	claim := strings.Join(args, " ")

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	flags := cmd.Flags()
	if flags.Changed("llm-provider") {
		cfg.LLM.Provider = llmProvider
		applyProviderEnv(cfg)
	}
	if flags.Changed("llm-model") {
		cfg.LLM.Model = llmModel
	}
	if flags.Changed("wikipedia") {
		cfg.Wikipedia.BaseURL = wikiBaseURL
	}
	if flags.Changed("no-footer") {
		cfg.Output.IncludeFooter = !noFooter
	}
	if cfg.LLM.Provider == "openai" && cfg.LLM.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	checker, err := pipeline.NewClaimChecker(cfg, logger, nil)
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg, logger, nil)
	if err != nil {
		return err
	}

	// Lookups carry their own timeout; this bounds the optional LLM call too
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.HTTP.Timeout+cfg.Wikipedia.Timeout*2)
	defer cancel()

	report, err := checker.Check(ctx, claim)
	if err != nil {
		return fmt.Errorf("claim check failed: %w", err)
	}

	if err := p.RenderClaimReport(report, outJSON, outMD, cfg.Output.Verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	return nil
}
