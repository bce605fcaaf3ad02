// Package httpapi exposes normalization and ranking over a fasthttp JSON API.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/baditaflorin/go_anagram_similarity/internal/core/domain"
	"github.com/baditaflorin/go_anagram_similarity/internal/core/ranking"
	"github.com/baditaflorin/go_anagram_similarity/internal/ports"
	"github.com/valyala/fasthttp"
)

// DefaultRequestTimeout bounds a single ranking request.
const DefaultRequestTimeout = 30 * time.Second

// NormalizeRequest represents a normalization request
type NormalizeRequest struct {
	Word string `json:"word"`
}

// NormalizeResponse represents a normalization response
type NormalizeResponse struct {
	Word       string `json:"word"`
	Normalized string `json:"normalized"`
}

// RankRequest represents a ranking request.
// Without candidates the server's word list is used.
type RankRequest struct {
	Query      string   `json:"query"`
	Candidates []string `json:"candidates,omitempty"`
	Top        int      `json:"top,omitempty"`
}

// RankedWord is one entry of a ranking response
type RankedWord struct {
	Rank  int     `json:"rank"`
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

// RankResponse represents a ranking response
type RankResponse struct {
	Query           string       `json:"query"`
	NormalizedQuery string       `json:"normalized_query"`
	Total           int          `json:"total"`
	Results         []RankedWord `json:"results"`
	ProcessingTime  string       `json:"processing_time,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string `json:"error"`
	Candidate string `json:"candidate,omitempty"`
	Index     *int   `json:"index,omitempty"`
}

// Handler routes API requests.
type Handler struct {
	ranker         ports.Ranker
	normalizer     ports.Normalizer
	words          []string
	defaultTop     int
	requestTimeout time.Duration
	logger         ports.Logger
}

// NewHandler creates a handler ranking against words by default.
func NewHandler(ranker ports.Ranker, normalizer ports.Normalizer, words []string, defaultTop int, logger ports.Logger) *Handler {
	return &Handler{
		ranker:         ranker,
		normalizer:     normalizer,
		words:          words,
		defaultTop:     defaultTop,
		requestTimeout: DefaultRequestTimeout,
		logger:         logger,
	}
}

// Handle is the fasthttp request handler
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	// Set common headers
	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("Server", "AnagramServer")

	// Route based on path
	switch string(ctx.Path()) {
	case "/health":
		h.handleHealthCheck(ctx)
	case "/normalize":
		h.handleNormalize(ctx)
	case "/rank":
		h.handleRank(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		h.writeJSONError(ctx, ErrorResponse{Error: "Not found"})
	}

	// Log request
	h.logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", time.Since(startTime),
	)
}

// handleHealthCheck responds to health check requests
func (h *Handler) handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	h.writeJSONResponse(ctx, map[string]interface{}{
		"status": "ok",
		"words":  len(h.words),
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleNormalize handles normalization requests
func (h *Handler) handleNormalize(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		h.writeJSONError(ctx, ErrorResponse{Error: "Method not allowed"})
		return
	}

	var req NormalizeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		h.writeJSONError(ctx, ErrorResponse{Error: "Invalid request: " + err.Error()})
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	h.writeJSONResponse(ctx, NormalizeResponse{
		Word:       req.Word,
		Normalized: h.normalizer.Normalize(req.Word),
	})
}

// handleRank handles ranking requests
func (h *Handler) handleRank(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		h.writeJSONError(ctx, ErrorResponse{Error: "Method not allowed"})
		return
	}

	var req RankRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		h.writeJSONError(ctx, ErrorResponse{Error: "Invalid request: " + err.Error()})
		return
	}
	if req.Top < 0 {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		h.writeJSONError(ctx, ErrorResponse{Error: "top must not be negative"})
		return
	}

	candidates := req.Candidates
	if candidates == nil {
		candidates = h.words
	}
	top := req.Top
	if top == 0 {
		top = h.defaultTop
	}

	// Create context with timeout
	c, cancel := context.WithTimeout(context.Background(), h.requestTimeout)
	defer cancel()

	results, err := h.ranker.Rank(c, req.Query, candidates)
	if err != nil {
		var invalid *domain.InvalidCandidateError
		if errors.As(err, &invalid) {
			ctx.SetStatusCode(fasthttp.StatusUnprocessableEntity)
			h.writeJSONError(ctx, ErrorResponse{Error: err.Error(), Candidate: invalid.Candidate, Index: &invalid.Index})
			return
		}
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
		h.writeJSONError(ctx, ErrorResponse{Error: err.Error()})
		return
	}

	shown := ranking.TopK(results, top)
	response := RankResponse{
		Query:           req.Query,
		NormalizedQuery: h.normalizer.Normalize(req.Query),
		Total:           len(results),
		Results:         make([]RankedWord, len(shown)),
		ProcessingTime:  time.Since(startTime).String(),
	}
	for i, r := range shown {
		response.Results[i] = RankedWord{Rank: i + 1, Word: r.Word, Score: r.Score}
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	h.writeJSONResponse(ctx, response)
}

// writeJSONResponse writes a JSON response to the context
func (h *Handler) writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		h.logger.Error("Error marshaling JSON response", "error", err)
		h.writeJSONError(ctx, ErrorResponse{Error: "Internal server error"})
		return
	}

	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func (h *Handler) writeJSONError(ctx *fasthttp.RequestCtx, errResponse ErrorResponse) {
	response, err := json.Marshal(errResponse)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		h.logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetBody(response)
}
