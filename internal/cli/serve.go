package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ppiankov/textprobe/internal/metrics"
	"github.com/ppiankov/textprobe/internal/pipeline"
	"github.com/ppiankov/textprobe/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis API over HTTP",
	Long: `Serve starts the JSON HTTP API:
  POST /v1/analyze         similarity analysis of {"text", "threshold"}
  POST /v1/claims/check    claim check of {"claim"}
  POST /v1/emotion/adjust  emotion adjustment of {"emotion", "confidence", "context"}
  GET  /v1/corpus          reference corpus in use
  GET  /healthz            liveness
  GET  /metrics            Prometheus metrics

Example:
  textprobe serve --addr :8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	m := metrics.New()

	p, err := pipeline.NewPipeline(cfg, logger, m)
	if err != nil {
		return err
	}
	checker, err := pipeline.NewClaimChecker(cfg, logger, m)
	if err != nil {
		return err
	}

	srv := server.NewServer(cfg.Server.Addr, server.Deps{
		Analyzer:         p,
		Checker:          checker,
		Corpus:           p.Analyzer().Corpus(),
		DefaultThreshold: cfg.Analysis.Threshold,
		Metrics:          m,
		Logger:           logger.Named("http"),
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("stopping", zap.NamedError("cause", context.Cause(gctx)))
		if err := srv.Stop(context.Background(), cfg.Server.ShutdownTimeout); err != nil {
			return fmt.Errorf("stop server: %w", err)
		}
		return nil
	})
	return g.Wait()
}
