package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/snapreads/studypack/internal/parser"
	"github.com/snapreads/studypack/internal/pipeline"
	"github.com/snapreads/studypack/internal/plan"
)

func (s *Server) handleCreatePack(w http.ResponseWriter, r *http.Request) {
	// Limit total request size, with headroom for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	userID := r.FormValue("user_id")
	if userID == "" {
		jsonError(w, "user_id is required", http.StatusBadRequest)
		return
	}

	minutes, err := strconv.Atoi(r.FormValue("time_limit"))
	if err != nil || !plan.TimeLimits[minutes] {
		jsonError(w, "time_limit must be one of 10, 20, 30, 60", http.StatusBadRequest)
		return
	}

	tier, err := plan.Parse(r.FormValue("plan"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	if !s.checkQuota(w, r, userID, tier) {
		return
	}

	result, err := s.pipeline.Run(r.Context(), pipeline.Request{
		Data:          data,
		Filename:      filename,
		BudgetMinutes: float64(minutes),
		Caps:          tier.Capabilities(),
	})
	if err != nil {
		var extErr *parser.ExtractionError
		if errors.As(err, &extErr) {
			jsonError(w, extErr.Message(), http.StatusBadRequest)
			return
		}
		s.log.Error("pipeline failed", "filename", filename, "error", err)
		jsonError(w, "failed to process document", http.StatusInternalServerError)
		return
	}

	body, err := json.Marshal(result)
	if err != nil {
		s.log.Error("marshal study pack", "error", err)
		jsonError(w, "failed to encode study pack", http.StatusInternalServerError)
		return
	}

	packID, err := s.history.Save(r.Context(), userID, filename, minutes,
		result.TotalMinutes, result.TotalWords, body)
	if err != nil {
		// The pack was built; losing the history row is not worth failing the request.
		s.log.Error("history save failed", "filename", filename, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	if packID != "" {
		w.Header().Set("X-Pack-ID", packID)
	}
	w.Write(body)
}

// checkQuota enforces the tier's monthly processing limit. Writes the error
// response and returns false when the user is over quota.
func (s *Server) checkQuota(w http.ResponseWriter, r *http.Request, userID string, tier plan.Tier) bool {
	limit := tier.MonthlyLimit()
	if limit < 0 {
		return true
	}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	used, err := s.history.CountSince(r.Context(), userID, monthStart)
	if err != nil {
		s.log.Error("quota check failed", "user_id", userID, "error", err)
		jsonError(w, "failed to check usage", http.StatusInternalServerError)
		return false
	}
	if used >= limit {
		jsonError(w, fmt.Sprintf("monthly limit of %d documents reached; upgrade to continue", limit), http.StatusForbidden)
		return false
	}
	return true
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
