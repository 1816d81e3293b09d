// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/logicgraphy/zeo/models"
	"github.com/logicgraphy/zeo/pkg/pipeline"
	"github.com/logicgraphy/zeo/pkg/store"
)

type Handler struct {
	pipeline *pipeline.Pipeline
	logger   *slog.Logger
}

func NewHandler(p *pipeline.Pipeline, logger *slog.Logger) *Handler {
	return &Handler{pipeline: p, logger: logger}
}

type analyzeRequest struct {
	URL string `json:"url"`
}

type categoryView struct {
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

type analyzeResponse struct {
	AnalysisID            string       `json:"analysis_id"`
	URL                   string       `json:"url"`
	Status                string       `json:"status"`
	OverallScore          int          `json:"overall_score"`
	ContentQuality        categoryView `json:"content_quality"`
	StructureOptimization categoryView `json:"structure_optimization"`
	AuthorityTrust        categoryView `json:"authority_trust"`
	AgentCompatibility    categoryView `json:"ai_agent_compatibility"`
	Summary               string       `json:"summary,omitempty"`
}

type statusResponse struct {
	AnalysisID string `json:"analysis_id"`
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
}

// HandleAnalyze runs the full pipeline synchronously and returns the
// analysis id plus a per-category snapshot of the start page's judge
// verdict. A site that could not be analyzed at all comes back as a
// failed-status body, not an HTTP error.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		h.writeJSONError(w, "URL cannot be empty", http.StatusBadRequest)
		return
	}

	rec, err := h.pipeline.Analyze(r.Context(), req.URL)
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyURL) {
			h.writeJSONError(w, "URL cannot be empty", http.StatusBadRequest)
			return
		}
		h.logger.Error("analysis failed", "url", req.URL, "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, buildAnalyzeResponse(rec))
}

// HandleGetReport returns the formatted report for a completed
// analysis. Unknown ids are 404; an analysis without a report (failed
// run) returns its status and explanatory message instead.
func (h *Handler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	rec, err := h.pipeline.GetReport(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeJSONError(w, "Report not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load report", "analysis_id", id, "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if rec.Report == nil {
		h.writeJSON(w, http.StatusOK, statusResponse{
			AnalysisID: rec.ID,
			Status:     rec.Status,
			Message:    rec.Summary,
		})
		return
	}
	h.writeJSON(w, http.StatusOK, rec.Report)
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// buildAnalyzeResponse snapshots the start page's judge categories,
// falling back to the first analyzed page, and to a neutral 3 for any
// category the judge did not produce.
func buildAnalyzeResponse(rec *models.AnalysisRecord) analyzeResponse {
	resp := analyzeResponse{
		AnalysisID:   rec.ID,
		URL:          rec.URL,
		Status:       rec.Status,
		OverallScore: rec.Score,
	}

	if rec.Status == models.StatusFailed || rec.Result == nil || len(rec.Result.PageResults) == 0 {
		resp.Summary = rec.Summary
		return resp
	}

	primary := rec.Result.PageResults[0]
	for _, page := range rec.Result.PageResults {
		if page.URL == rec.URL {
			primary = page
			break
		}
	}

	resp.ContentQuality = toCategoryView(primary.Judge, models.CategoryContentQuality)
	resp.StructureOptimization = toCategoryView(primary.Judge, models.CategoryStructureOptimization)
	resp.AuthorityTrust = toCategoryView(primary.Judge, models.CategoryAuthorityTrust)
	resp.AgentCompatibility = toCategoryView(primary.Judge, models.CategoryAgentCompatibility)
	return resp
}

func toCategoryView(js *models.JudgeScore, key string) categoryView {
	cs, ok := js.Category(key)
	if !ok {
		return categoryView{Score: 3}
	}
	score := cs.Score
	if score < 1 {
		score = 1
	}
	if score > 5 {
		score = 5
	}
	return categoryView{Score: score, Reason: cs.Reason}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write JSON response", "error", err)
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
