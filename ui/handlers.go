package ui

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"datastory/domain/core"
	"datastory/domain/insight"
	"datastory/internal/intake"
)

// generateResponse is the JSON body returned by the story endpoint.
type generateResponse struct {
	ReportID    string                      `json:"report_id"`
	GeneratedAt time.Time                   `json:"generated_at"`
	Documents   map[insight.Audience]string `json:"documents"`
	Export      json.RawMessage             `json:"export"`
	Counts      insight.Counts              `json:"counts"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) handleDetectors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"detectors": a.service.ListDetectors()})
}

// handleGenerate runs the full pipeline on posted statistics and returns all
// three documents plus the structured export.
func (a *App) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req intake.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	bundle, err := a.service.GenerateReport(r.Context(), req)
	if err != nil {
		a.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		ReportID:    bundle.ReportID.String(),
		GeneratedAt: bundle.GeneratedAt,
		Documents:   bundle.Documents,
		Export:      bundle.ExportJSON,
		Counts:      bundle.Story.Counts,
	})
}

// handleDocument runs the pipeline and returns one audience document rendered
// as HTML.
func (a *App) handleDocument(w http.ResponseWriter, r *http.Request) {
	audience := insight.Audience(chi.URLParam(r, "audience"))
	if !validAudience(audience) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("unknown audience %q", audience)})
		return
	}

	var req intake.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	bundle, err := a.service.GenerateReport(r.Context(), req)
	if err != nil {
		a.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(renderHTML(bundle.Documents[audience]))
}

func (a *App) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if core.IsMalformedInputError(err) {
		status = http.StatusBadRequest
	}
	if status >= http.StatusInternalServerError {
		a.logger.Error().Err(err).Msg("report generation failed")
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func validAudience(audience insight.Audience) bool {
	for _, a := range insight.Audiences {
		if a == audience {
			return true
		}
	}
	return false
}

// renderHTML converts a markdown document to a standalone HTML fragment.
func renderHTML(doc string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(doc), p, renderer)
}
