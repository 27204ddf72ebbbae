package mcpserver

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/ppiankov/textprobe/internal/factcheck"
	"github.com/ppiankov/textprobe/internal/model"
	"github.com/ppiankov/textprobe/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const verbatimReference = "Algoritmos de IA são usados em reconhecimento de imagem, processamento de fala e tomada de decisões automatizada."

type stubChecker struct{}

func (stubChecker) Check(_ context.Context, claim string) (*model.ClaimReport, error) {
	if strings.TrimSpace(claim) == "" {
		return nil, factcheck.ErrEmptyClaim
	}
	return &model.ClaimReport{
		ID:           "r1",
		Claim:        claim,
		Keywords:     []string{"Python"},
		Verdict:      model.VerdictProbable,
		AverageScore: 0.4,
		Sources: []model.AnalyzedSource{{
			Source:      model.Source{Title: "Python", Link: "https://en.wikipedia.org/wiki/Python", Keyword: "Python", Authority: model.TierSecondary},
			Relevance:   0.5,
			Credibility: 0.8,
			Score:       0.4,
		}},
		Lookups: []model.LookupNote{{Keyword: "Python", Outcome: model.LookupFound}},
	}, nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	p, err := pipeline.NewPipeline(model.DefaultConfig(), nil, nil)
	require.NoError(t, err)
	return New(p, stubChecker{}, 0, "test", nil)
}

func TestAnalyzeText(t *testing.T) {
	s := newTestServer(t)

	_, out, err := s.AnalyzeText(context.Background(), &mcp.CallToolRequest{}, InputAnalyzeText{Text: verbatimReference})
	require.NoError(t, err)

	assert.Equal(t, model.DefaultThreshold, out.Threshold)
	require.Len(t, out.Sentences, 1)
	assert.Equal(t, "high_risk", out.Sentences[0].Status)
	assert.InDelta(t, 1.0, out.Sentences[0].MaxSimilarity, 1e-6)
	assert.NotEmpty(t, out.Sentences[0].Suggestions)
	assert.Equal(t, 1, out.Summary.HighRisk)
}

func TestAnalyzeText_Errors(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, _, err := s.AnalyzeText(ctx, &mcp.CallToolRequest{}, InputAnalyzeText{Text: ""})
	assert.Error(t, err)

	high := 0.95
	_, _, err = s.AnalyzeText(ctx, &mcp.CallToolRequest{}, InputAnalyzeText{Text: verbatimReference, Threshold: &high})
	assert.True(t, errors.Is(err, model.ErrInvalidThreshold))

	_, _, err = s.AnalyzeText(ctx, &mcp.CallToolRequest{}, InputAnalyzeText{Text: "Curto demais."})
	assert.True(t, errors.Is(err, pipeline.ErrNoSentences))
}

func TestCheckClaim(t *testing.T) {
	s := newTestServer(t)

	_, out, err := s.CheckClaim(context.Background(), &mcp.CallToolRequest{}, InputCheckClaim{Claim: "Python foi criado em 1991"})
	require.NoError(t, err)
	assert.Equal(t, "probable", out.Verdict)
	assert.Equal(t, "PROBABLE", out.VerdictLabel)
	require.Len(t, out.Sources, 1)
	assert.Equal(t, "secondary", out.Sources[0].Authority)
	assert.Equal(t, []Lookup{{Keyword: "Python", Outcome: "found"}}, out.Lookups)
	assert.NotNil(t, out.Evidence)

	_, _, err = s.CheckClaim(context.Background(), &mcp.CallToolRequest{}, InputCheckClaim{})
	assert.True(t, errors.Is(err, factcheck.ErrEmptyClaim))
}

func TestMCPServer_ListsTools(t *testing.T) {
	ctx := context.Background()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serverSession, err := newTestServer(t).MCPServer().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer func() { _ = serverSession.Close() }()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer func() { _ = session.Close() }()

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"analyze_text", "check_claim"}, names)
}
