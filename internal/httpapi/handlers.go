package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ardenhollis/structurize/pkg/audit"
	"github.com/ardenhollis/structurize/pkg/cache"
	"github.com/ardenhollis/structurize/pkg/fixture"
	"github.com/ardenhollis/structurize/pkg/structurize"
)

// structurizeResponse is the body of a successful POST /structurize.
type structurizeResponse struct {
	ID          string            `json:"id"`
	Graph       GraphView         `json:"graph"`
	Stats       structurize.Stats `json:"stats"`
	Diagnostics []string          `json:"diagnostics,omitempty"`
}

func (s *Server) handleStructurize(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}

	var f fixture.Fixture
	if err := json.Unmarshal(raw, &f); err != nil {
		writeError(w, http.StatusBadRequest, "decode fixture: "+err.Error())
		return
	}

	key := cache.ResultKey(cache.Hash(raw))
	if cached, hit, err := s.Cache.Get(r.Context(), key); err == nil && hit {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "hit")
		w.WriteHeader(http.StatusOK)
		_, _ = io.Copy(w, bytes.NewReader(cached))
		return
	}

	pool, err := fixture.Build(&f)
	if err != nil {
		writeError(w, http.StatusBadRequest, "build fixture: "+err.Error())
		return
	}

	started := time.Now()
	diagnostics := &structurize.CollectingDiagnostics{}
	result, runErr := structurize.Run(pool, nil, diagnostics)

	rec := &audit.Record{
		ID:        uuid.NewString(),
		InputHash: cache.Hash(raw),
		StartedAt: started,
		Duration:  time.Since(started),
		Success:   runErr == nil,
	}
	if runErr != nil {
		rec.Error = runErr.Error()
	} else {
		rec.Stats = result.Stats
		rec.Diagnostics = result.Diagnostics
	}
	if err := s.Audit.Put(r.Context(), rec); err != nil {
		s.Logger.Warnf("audit put failed: %v", err)
	}

	if runErr != nil {
		writeError(w, http.StatusUnprocessableEntity, runErr.Error())
		return
	}

	resp := structurizeResponse{
		ID:          rec.ID,
		Graph:       buildGraphView(pool),
		Stats:       result.Stats,
		Diagnostics: result.Diagnostics,
	}
	if encoded, err := json.Marshal(resp); err == nil {
		if err := s.Cache.Set(r.Context(), key, encoded, time.Hour); err != nil {
			s.Logger.Debugf("cache store failed: %v", err)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.Audit.Get(r.Context(), id)
	if err == audit.ErrNotFound {
		writeError(w, http.StatusNotFound, "no run with that id")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	recs, err := s.Audit.List(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
