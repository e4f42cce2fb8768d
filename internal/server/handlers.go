package server

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"

	"go.uber.org/zap"
)

// SearchResponse is the shape of GET /api/v1/search responses.
type SearchResponse struct {
	Query   string      `json:"query"`
	Total   int         `json:"total"`
	Results interface{} `json:"results"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		s.respondError(w, http.StatusBadRequest, "q parameter is required")
		return
	}
	m := s.Manifest()
	if m == nil {
		s.respondError(w, http.StatusServiceUnavailable, "manifest not built; run 'shiori build' first")
		return
	}

	limit := s.config.Search.DefaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	if limit > s.config.Search.MaxLimit {
		limit = s.config.Search.MaxLimit
	}

	s.logger.Debug("search request", zap.String("query", q), zap.Int("limit", limit))
	results := s.engine.Search(m, q)
	if len(results) > limit {
		results = results[:limit]
	}
	for i := range results {
		results[i].ViewerURL = s.links.ViewerURL(results[i].DocFile, results[i].Page)
	}
	s.respondJSON(w, http.StatusOK, &SearchResponse{Query: q, Total: len(results), Results: results})
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	if s.frameworks == nil {
		s.respondError(w, http.StatusNotImplemented, "frameworks table not configured")
		return
	}
	style := r.URL.Query().Get("style")
	if style == "" {
		s.respondError(w, http.StatusBadRequest, "style parameter is required")
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "year parameter is required")
		return
	}
	m := s.Manifest()
	if m == nil {
		s.respondError(w, http.StatusServiceUnavailable, "manifest not built; run 'shiori build' first")
		return
	}

	s.logger.Debug("resolve request", zap.String("style", style), zap.Int("year", year))
	res := s.frameworks.Resolve(m, style, year)
	if res == nil {
		s.respondError(w, http.StatusNotFound, "no section matches that style and year")
		return
	}
	res.ViewerURL = s.links.ViewerURL(res.DocFile, res.Page)
	s.respondJSON(w, http.StatusOK, res)
}

// documentInfo summarizes one manifest entry for listing.
type documentInfo struct {
	File       string `json:"file"`
	Title      string `json:"title"`
	Sections   int    `json:"sections"`
	TotalPages int    `json:"total_pages"`
	RawURL     string `json:"raw_url"`
}

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	m := s.Manifest()
	if m == nil {
		s.respondError(w, http.StatusServiceUnavailable, "manifest not built; run 'shiori build' first")
		return
	}
	docs := make([]documentInfo, 0, len(m))
	for file, entry := range m {
		docs = append(docs, documentInfo{
			File:       file,
			Title:      entry.Title,
			Sections:   len(entry.Sections),
			TotalPages: entry.TotalPages,
			RawURL:     s.links.RawURL(file),
		})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].File < docs[j].File })
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"documents": docs, "total": len(docs)})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	m := s.Manifest()
	resp := map[string]interface{}{
		"built":         m != nil,
		"documents":     len(m),
		"sections":      m.TotalSections(),
		"manifest_path": s.config.Storage.ManifestPath,
		"pdf_dir":       s.config.Storage.PDFDir,
	}
	if s.frameworks != nil {
		resp["framework_rows"] = s.frameworks.Len()
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
