package api

import (
	"encoding/json"
	"net/http"

	"github.com/snapreads/studypack/internal/llm"
)

func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	snap := llm.Snapshot{}
	if s.llmStats != nil {
		snap = s.llmStats.Snapshot()
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}
