package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/snapreads/studypack/internal/export"
	"github.com/snapreads/studypack/internal/history"
	"github.com/snapreads/studypack/internal/pack"
	"github.com/snapreads/studypack/internal/plan"
)

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		jsonError(w, "user_id is required", http.StatusBadRequest)
		return
	}
	tier, err := plan.Parse(r.URL.Query().Get("plan"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := s.history.List(r.Context(), userID, tier.HistoryLimit())
	if err != nil {
		s.log.Error("history list failed", "user_id", userID, "error", err)
		jsonError(w, "failed to list history", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []history.Record{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"history": records})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		jsonError(w, "user_id is required", http.StatusBadRequest)
		return
	}
	packID := chi.URLParam(r, "packID")

	body, err := s.history.Get(r.Context(), packID, userID)
	if errors.Is(err, history.ErrNotFound) {
		jsonError(w, "study pack not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Error("history get failed", "pack_id", packID, "error", err)
		jsonError(w, "failed to load study pack", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// handleDownloadPDF re-renders a stored pack as a formatted PDF download.
func (s *Server) handleDownloadPDF(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		jsonError(w, "user_id is required", http.StatusBadRequest)
		return
	}
	packID := chi.URLParam(r, "packID")

	body, err := s.history.Get(r.Context(), packID, userID)
	if errors.Is(err, history.ErrNotFound) {
		jsonError(w, "study pack not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Error("history get failed", "pack_id", packID, "error", err)
		jsonError(w, "failed to load study pack", http.StatusInternalServerError)
		return
	}

	var stored pack.StudyPack
	if err := json.Unmarshal(body, &stored); err != nil {
		s.log.Error("stored pack unreadable", "pack_id", packID, "error", err)
		jsonError(w, "stored study pack is unreadable", http.StatusInternalServerError)
		return
	}

	data, err := export.Render(&stored)
	if err != nil {
		s.log.Error("pdf render failed", "pack_id", packID, "error", err)
		jsonError(w, "failed to render study pack", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename(stored.OriginalFilename)))
	w.Write(data)
}
