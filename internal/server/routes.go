package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/paperscout/paperscout/internal/catalog"
	"github.com/paperscout/paperscout/internal/ingest"
	"github.com/paperscout/paperscout/internal/llm"
	"github.com/paperscout/paperscout/internal/vectordb"
)

type ingestRequest struct {
	Query string `json:"query"`
	Max   int    `json:"max,omitempty"`
}

type ingestResponse struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

type searchResult struct {
	Rank     int     `json:"rank"`
	Title    string  `json:"title"`
	URL      string  `json:"url"`
	Abstract string  `json:"abstract"`
	Score    float32 `json:"score"`
	SourceID string  `json:"source_id"`
}

type summarizeRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k,omitempty"`
}

type summarizeResponse struct {
	Query   string `json:"query"`
	Summary string `json:"summary"`
}

type planRequest struct {
	Query string   `json:"query"`
	Tasks []string `json:"tasks"`
}

type planResponse struct {
	Query   string            `json:"query"`
	Results map[string]string `json:"results"`
	Skipped []string          `json:"skipped,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	count, err := s.pipeline.IngestQuery(r.Context(), req.Query, req.Max)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ingestResponse{Query: req.Query, Count: count})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "q parameter is required")
		return
	}

	k, _ := strconv.Atoi(r.URL.Query().Get("k"))

	results, err := s.store.Search(r.Context(), query, k)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	out := make([]searchResult, len(results))
	for i, res := range results {
		out[i] = searchResult{
			Rank:     i + 1,
			Title:    res.Title,
			URL:      res.URL,
			Abstract: res.Abstract,
			Score:    res.Score,
			SourceID: res.SourceID,
		}
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	summary, err := s.agent.Summarize(r.Context(), req.Query, req.TopK)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summarizeResponse{Query: req.Query, Summary: summary})
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	results, skipped, err := s.agent.PlanAndExecute(r.Context(), req.Query, req.Tasks)
	if err != nil && len(results) == 0 {
		s.writeDomainError(w, err)
		return
	}
	if err != nil {
		// Partial success: completed tasks are returned, failures logged.
		s.logger.Warn("plan completed partially", zap.Error(err))
	}

	writeJSON(w, http.StatusOK, planResponse{Query: req.Query, Results: results, Skipped: skipped})
}

// writeDomainError maps the error taxonomy to HTTP statuses: upstream
// backends (catalog, generation) are 502, an unopenable index is 503.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	s.logger.Error("request failed", zap.Error(err))

	switch {
	case errors.Is(err, vectordb.ErrIndexUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, catalog.ErrFetch), errors.Is(err, ingest.ErrIngestion), errors.Is(err, llm.ErrGeneration):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
