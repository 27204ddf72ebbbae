// Package mcpserver serves textprobe's analysis and claim check as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/ppiankov/textprobe/internal/model"
	"go.uber.org/zap"
)

// TextAnalyzer analyzes literal text
type TextAnalyzer interface {
	AnalyzeText(ctx context.Context, text, source string, threshold float64) (*model.Report, error)
}

// ClaimChecker checks a claim against reference sources
type ClaimChecker interface {
	Check(ctx context.Context, claim string) (*model.ClaimReport, error)
}

// Server holds the components the tools call into
type Server struct {
	analyzer  TextAnalyzer
	checker   ClaimChecker
	threshold float64
	version   string
	logger    *zap.Logger
}

// New creates the tool server; a zero threshold uses the default cutoff
func New(analyzer TextAnalyzer, checker ClaimChecker, threshold float64, version string, logger *zap.Logger) *Server {
	if threshold == 0 {
		threshold = model.DefaultThreshold
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		analyzer:  analyzer,
		checker:   checker,
		threshold: threshold,
		version:   version,
		logger:    logger,
	}
}

// MCPServer builds the MCP server with both tools registered
func (s *Server) MCPServer() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "textprobe", Version: s.version}, nil)
	mcp.AddTool(server, MetadataAnalyzeText, s.AnalyzeText)
	mcp.AddTool(server, MetadataCheckClaim, s.CheckClaim)
	return server
}

// Run serves over stdin/stdout until ctx is cancelled or the client disconnects
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("mcp server starting on stdio", zap.String("version", s.version))
	if err := s.MCPServer().Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
