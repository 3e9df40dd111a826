package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/gorilla/mux"

	"github.com/avoronov/clauselint/internal/model"
	"github.com/avoronov/clauselint/internal/rules"
	"github.com/avoronov/clauselint/internal/segment"
	"github.com/avoronov/clauselint/internal/store"
)

type segmentRequest struct {
	Text string `json:"text"`
}

type segmentResponse struct {
	Clauses []model.Clause `json:"clauses"`
}

type analyzeRequest struct {
	Clauses      []model.Clause `json:"clauses"`
	DupThreshold *float64       `json:"dup_threshold,omitempty"`
}

type analyzeResponse struct {
	Findings model.FindingList `json:"findings"`
}

type documentRequest struct {
	Title *string `json:"title"`
	Text  *string `json:"text"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSegment(w http.ResponseWriter, r *http.Request) {
	var req segmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	clauses := segment.Split(req.Text)
	if clauses == nil {
		clauses = []model.Clause{}
	}
	writeJSON(w, http.StatusOK, segmentResponse{Clauses: clauses})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// The core uses the threshold as-is; clamping to the supported domain is
	// this boundary's job.
	threshold := rules.DefaultDupThreshold
	if req.DupThreshold != nil {
		threshold = rules.ClampThreshold(*req.DupThreshold)
	}

	findings := rules.Analyze(req.Clauses, threshold)
	if findings == nil {
		findings = []model.Finding{}
	}
	writeJSON(w, http.StatusOK, analyzeResponse{Findings: findings})
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == nil || req.Text == nil {
		writeError(w, http.StatusBadRequest, "title and text are required")
		return
	}
	if msg, ok := validateDocument(*req.Title, *req.Text); !ok {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	doc, err := s.store.Create(r.Context(), *req.Title, *req.Text)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "create failed")
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list failed")
		return
	}
	if docs == nil {
		docs = []*model.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.lookupDocument(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleUpdateDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req documentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	title, text := "", ""
	if req.Title != nil {
		title = *req.Title
	}
	if req.Text != nil {
		text = *req.Text
	}
	if msg, ok := validateUpdate(req.Title, title, req.Text, text); !ok {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	doc, err := s.store.Update(r.Context(), id, store.Update{Title: req.Title, Text: req.Text})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Document not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "update failed")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Document not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.lookupDocument(w, r)
	if !ok {
		return
	}

	report, err := s.pipeline.AnalyzeDocument(r.Context(), doc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleDocumentReport(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.lookupDocument(w, r)
	if !ok {
		return
	}

	report, err := s.pipeline.AnalyzeDocument(r.Context(), doc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	switch r.URL.Query().Get("format") {
	case "md", "markdown":
		renderer := s.pipeline.Renderer()
		if r.URL.Query().Get("resolved") == "true" {
			renderer = renderer.WithResolved()
		}
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, _ = w.Write([]byte(renderer.Markdown(report)))
	case "", "json":
		writeJSON(w, http.StatusOK, report)
	default:
		writeError(w, http.StatusBadRequest, "unknown format")
	}
}

func (s *Server) lookupDocument(w http.ResponseWriter, r *http.Request) (*model.Document, bool) {
	id, ok := pathID(w, r)
	if !ok {
		return nil, false
	}

	doc, err := s.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Document not found")
			return nil, false
		}
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return nil, false
	}
	return doc, true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid document id")
		return 0, false
	}
	return id, true
}

const (
	minTitleLen = 3
	maxTitleLen = 200
)

func validateDocument(title, text string) (string, bool) {
	if n := utf8.RuneCountInString(title); n < minTitleLen || n > maxTitleLen {
		return "title must be 3-200 characters", false
	}
	if text == "" {
		return "text must not be empty", false
	}
	return "", true
}

func validateUpdate(title *string, titleVal string, text *string, textVal string) (string, bool) {
	if title != nil {
		if n := utf8.RuneCountInString(titleVal); n < minTitleLen || n > maxTitleLen {
			return "title must be 3-200 characters", false
		}
	}
	if text != nil && textVal == "" {
		return "text must not be empty", false
	}
	return "", true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
