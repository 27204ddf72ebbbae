package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ppiankov/textprobe/internal/emotion"
	"github.com/ppiankov/textprobe/internal/factcheck"
	"github.com/ppiankov/textprobe/internal/model"
	"github.com/ppiankov/textprobe/internal/pipeline"
)

const maxRequestBytes = 1 << 20

type handlers struct {
	deps Deps
}

type analyzeRequest struct {
	Text      string   `json:"text"`
	Threshold *float64 `json:"threshold,omitempty"`
	Source    string   `json:"source,omitempty"`
}

type claimRequest struct {
	Claim string `json:"claim"`
}

type emotionRequest struct {
	Emotion    string   `json:"emotion"`
	Confidence float64  `json:"confidence"`
	Context    []string `json:"context"`
}

type corpusResponse struct {
	Fingerprint string           `json:"fingerprint"`
	Sentences   int              `json:"sentences"`
	Categories  []corpusCategory `json:"categories"`
}

type corpusCategory struct {
	Name      string   `json:"name"`
	Sentences []string `json:"sentences"`
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handlers) analyze(c *gin.Context) {
	var req analyzeRequest
	if !bindJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		abortWithError(c, http.StatusBadRequest, errors.New("text is required"))
		return
	}

	threshold := h.deps.DefaultThreshold
	if threshold == 0 {
		threshold = model.DefaultThreshold
	}
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	if err := model.ValidateThreshold(threshold); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}

	source := req.Source
	if source == "" {
		source = "api"
	}

	report, err := h.deps.Analyzer.AnalyzeText(c.Request.Context(), req.Text, source, threshold)
	switch {
	case errors.Is(err, pipeline.ErrNoSentences):
		abortWithError(c, http.StatusUnprocessableEntity, err)
		return
	case errors.Is(err, model.ErrInvalidThreshold):
		abortWithError(c, http.StatusBadRequest, err)
		return
	case err != nil:
		abortWithError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *handlers) checkClaim(c *gin.Context) {
	var req claimRequest
	if !bindJSON(c, &req) {
		return
	}

	report, err := h.deps.Checker.Check(c.Request.Context(), req.Claim)
	switch {
	case errors.Is(err, factcheck.ErrEmptyClaim):
		abortWithError(c, http.StatusBadRequest, err)
		return
	case err != nil:
		abortWithError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *handlers) adjustEmotion(c *gin.Context) {
	var req emotionRequest
	if !bindJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.Emotion) == "" {
		abortWithError(c, http.StatusBadRequest, errors.New("emotion is required"))
		return
	}
	if req.Confidence < 0 || req.Confidence > 100 {
		abortWithError(c, http.StatusBadRequest, errors.New("confidence must be between 0 and 100"))
		return
	}
	if len(req.Context) == 0 {
		req.Context = []string{model.ContextUndefined}
	}

	adj := emotion.Adjust(req.Emotion, req.Confidence, req.Context)
	c.JSON(http.StatusOK, adj)
}

func (h *handlers) corpus(c *gin.Context) {
	if h.deps.Corpus == nil {
		abortWithError(c, http.StatusServiceUnavailable, errors.New("corpus not loaded"))
		return
	}

	resp := corpusResponse{
		Fingerprint: h.deps.Corpus.Fingerprint(),
		Sentences:   h.deps.Corpus.Len(),
	}
	for _, cat := range h.deps.Corpus.Categories() {
		resp.Categories = append(resp.Categories, corpusCategory{Name: cat.Name, Sentences: cat.Sentences})
	}
	c.JSON(http.StatusOK, resp)
}

// bindJSON decodes a size-limited JSON body, answering 400 on failure
func bindJSON(c *gin.Context, v any) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes)
	if err := c.ShouldBindJSON(v); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return false
	}
	return true
}

func abortWithError(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
