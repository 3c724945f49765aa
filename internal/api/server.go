// Package api exposes classification and template assembly over HTTP.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/alevsk/sentinel-forge/internal/assembler"
	"github.com/alevsk/sentinel-forge/internal/classifier"
	"github.com/alevsk/sentinel-forge/internal/content"
	"github.com/alevsk/sentinel-forge/internal/deployconfig"
	"github.com/alevsk/sentinel-forge/internal/diag"
	"github.com/alevsk/sentinel-forge/internal/logger"
	"github.com/alevsk/sentinel-forge/internal/merge"
	"github.com/alevsk/sentinel-forge/internal/store"
)

// Server represents the API server
type Server struct {
	router *mux.Router
}

// NewServer creates a new API server instance
func NewServer() *Server {
	s := &Server{
		router: mux.NewRouter(),
	}
	s.routes()
	return s
}

// routes sets up the API routes
func (s *Server) routes() {
	s.router.HandleFunc("/api/v1/health", s.healthCheck).Methods("GET")
	s.router.HandleFunc("/api/v1/classify", s.classify).Methods("POST")
	s.router.HandleFunc("/api/v1/template", s.template).Methods("POST")
}

// Start starts the API server
func (s *Server) Start(addr string) error {
	logger.Info().Msgf("starting server on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// Handler returns the underlying HTTP handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// healthCheck handles the health check endpoint
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// classify handles single-document classification: the request body is
// one JSON content document, the response its detected kind.
func (s *Server) classify(w http.ResponseWriter, r *http.Request) {
	var doc content.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid document: "+err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"kind": classifier.Classify(doc),
	})
}

// templateRequest is the payload for the template endpoint: parsed
// shared and customer documents plus the deployment configuration.
type templateRequest struct {
	Shared   []content.Document   `json:"shared"`
	Customer []content.Document   `json:"customer"`
	Config   *deployconfig.Config `json:"config"`
}

// template assembles a deployment template from the posted document
// sets.
func (s *Server) template(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.Config == nil {
		s.writeError(w, http.StatusBadRequest, "missing config")
		return
	}
	if err := req.Config.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	diags := &diag.Collector{}
	resolved := merge.Resolve(toEntries(req.Shared), toEntries(req.Customer),
		req.Config.ExcludeRules, req.Config.EnabledConnectorIDs())
	tmpl, err := assembler.Assemble(resolved, req.Config, diags)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"template":    tmpl,
		"diagnostics": diags.Entries(),
	})
}

// toEntries wraps bare documents into store entries, deriving each
// document's merge identity the same way the local store does.
func toEntries(docs []content.Document) []store.Entry {
	entries := make([]store.Entry, 0, len(docs))
	for _, doc := range docs {
		for _, key := range []string{"id", "ParserName", "FunctionName"} {
			if id := content.GetValue(doc, key, "", false); id != "" {
				entries = append(entries, store.Entry{ID: id, Doc: doc})
				break
			}
		}
	}
	return entries
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error().Msgf("failed to encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
