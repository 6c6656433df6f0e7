package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/scarab-search/scarab/src/index"
	"github.com/scarab-search/scarab/src/metrics"
	"github.com/scarab-search/scarab/src/output"
)

type indexDetail struct {
	Name     string        `json:"name"`
	Path     string        `json:"path"`
	Metadata indexMetadata `json:"metadata"`
}

type indexMetadata struct {
	DocCount  uint64 `json:"doc_count"`
	SizeBytes uint64 `json:"size_bytes"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListIndexes(w http.ResponseWriter, r *http.Request) {
	infos, err := s.catalog.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list indexes")
		return
	}
	summaries := make([]output.IndexSummary, 0, len(infos))
	for _, info := range infos {
		summary := output.IndexSummary{Name: info.Name, Path: info.IndexPath}
		if entry, err := s.catalog.Get(info.Name); err == nil {
			if stats, err := s.catalog.Stats(entry); err == nil {
				summary.DocCount = stats.DocCount
				summary.SizeBytes = stats.SizeBytes
			}
		}
		summaries = append(summaries, summary)
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleIndexDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	entry, err := s.catalog.Get(name)
	if err != nil {
		writeCatalogError(w, name, err)
		return
	}
	stats, err := s.catalog.Stats(entry)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to stat index '%s'", name))
		return
	}
	writeJSON(w, http.StatusOK, indexDetail{
		Name:     entry.Name,
		Path:     entry.IndexPath,
		Metadata: indexMetadata{DocCount: stats.DocCount, SizeBytes: stats.SizeBytes},
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "Missing query parameter 'q'")
		return
	}
	limit := s.config.Search.DefaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid limit: %s", v))
			return
		}
		limit = n
	}
	entry, err := s.catalog.Get(name)
	if err != nil {
		writeCatalogError(w, name, err)
		return
	}
	results, err := index.Search(entry, q, limit, s.config.Search.SnippetLength)
	if err != nil {
		log.Error("Search for %q on '%s' failed: %s", q, name, err)
		writeError(w, http.StatusInternalServerError, "Search failed: internal error")
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	h := metrics.Handler()
	if h == nil {
		writeError(w, http.StatusNotFound, "Metrics are disabled")
		return
	}
	h.ServeHTTP(w, r)
}

// writeCatalogError maps catalog errors onto responses; unknown index names
// become a 404.
func writeCatalogError(w http.ResponseWriter, name string, err error) {
	notFound := &index.NotFoundError{}
	if errors.As(err, &notFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Index '%s' not found", name))
		return
	}
	log.Error("Error opening index '%s': %s", name, err)
	writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to open index '%s'", name))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response: %s", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
