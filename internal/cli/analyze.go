package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/textprobe/internal/model"
	"github.com/ppiankov/textprobe/internal/pipeline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	outJSON   string
	outMD     string
	inputFile string
	inputURL  string
	threshold float64
	corpusArg string
	noFooter  bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Flag sentences that follow the reference corpus too closely",
	Long: `Analyze splits text into sentences and compares each one against the
reference corpus with TF-IDF cosine similarity:
- above 0.6 is HIGH RISK and comes with rewrite suggestions
- above the threshold (default 0.3) is SUSPECT
- everything else is OK

Text comes from the argument, --file, --url, or stdin.

Example:
  textprobe analyze "Python é uma linguagem de programação de alto nível."
  textprobe analyze --file essay.txt --threshold 0.4 --md report.md
  textprobe analyze --url https://example.com/article --json report.json
  cat essay.txt | textprobe analyze`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&inputFile, "file", "", "read text from a file")
	analyzeCmd.Flags().StringVar(&inputURL, "url", "", "fetch text from a URL")
	analyzeCmd.Flags().Float64Var(&threshold, "threshold", model.DefaultThreshold, "suspect cutoff (0.1-0.8)")
	analyzeCmd.Flags().StringVar(&corpusArg, "corpus", "", "YAML reference corpus (default: built-in)")
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	applyAnalysisFlags(cmd, cfg)
	if err := model.ValidateThreshold(cfg.Analysis.Threshold); err != nil {
		return err
	}

	ref, text, err := resolveInput(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.HTTP.Timeout)
	defer cancel()

	p, err := pipeline.NewPipeline(cfg, logger, nil)
	if err != nil {
		return err
	}

	logger.Debug("analyzing",
		zap.String("ref", ref),
		zap.Float64("threshold", cfg.Analysis.Threshold),
		zap.Bool("inline", text != ""))

	var report *model.Report
	if text != "" {
		report, err = p.AnalyzeText(ctx, text, "inline", cfg.Analysis.Threshold)
	} else {
		report, err = p.AnalyzeRef(ctx, ref)
	}
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if err := p.RenderReport(report, outJSON, outMD, cfg.Output.Verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	return nil
}

// applyAnalysisFlags copies explicitly set analysis flags over the loaded config
func applyAnalysisFlags(cmd *cobra.Command, cfg *model.Config) {
	flags := cmd.Flags()
	if flags.Changed("threshold") {
		cfg.Analysis.Threshold = threshold
	}
	if flags.Changed("corpus") {
		cfg.Corpus.File = corpusArg
	}
	if flags.Changed("no-footer") {
		cfg.Output.IncludeFooter = !noFooter
	}
}

// resolveInput picks the document source. Inline text is returned as text;
// everything else becomes a loader ref.
func resolveInput(args []string) (ref string, text string, err error) {
	sources := 0
	if len(args) > 0 {
		sources++
	}
	if inputFile != "" {
		sources++
	}
	if inputURL != "" {
		sources++
	}
	if sources > 1 {
		return "", "", fmt.Errorf("use only one of: text argument, --file, --url")
	}

	switch {
	case len(args) > 0:
		if strings.TrimSpace(args[0]) == "" {
			return "", "", fmt.Errorf("empty text")
		}
		return "", args[0], nil
	case inputFile != "":
		return inputFile, "", nil
	case inputURL != "":
		if !pipeline.IsURL(inputURL) {
			return "", "", fmt.Errorf("not an http(s) URL: %s", inputURL)
		}
		return inputURL, "", nil
	}

	if stat, statErr := os.Stdin.Stat(); statErr == nil && stat.Mode()&os.ModeCharDevice != 0 {
		return "", "", fmt.Errorf("no input: pass text, --file, --url, or pipe text on stdin")
	}
	return "-", "", nil
}
