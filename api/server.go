package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/pvera/gridpath/pathfind/mapstore"
	"github.com/pvera/gridpath/pathfind/render"
	"github.com/pvera/gridpath/pathfind/search"
	"github.com/pvera/gridpath/pathfind/service"
	"github.com/pvera/gridpath/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.SearchService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server
func NewServer(searchService service.SearchService, hub *websocket.Hub) *Server {
	s := &Server{
		service: searchService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	// API routes with clean REST patterns
	api := s.router.PathPrefix("/api").Subrouter()

	// Run management
	api.HandleFunc("/runs", s.handleCreateRun).Methods("POST")
	api.HandleFunc("/runs", s.handleListRuns).Methods("GET")
	api.HandleFunc("/runs/{id}", s.handleGetRun).Methods("GET")
	api.HandleFunc("/runs/{id}", s.handleDeleteRun).Methods("DELETE")
	api.HandleFunc("/runs/{id}/trace", s.handleGetTrace).Methods("GET")
	api.HandleFunc("/runs/{id}/render", s.handleRenderRun).Methods("GET")
	api.HandleFunc("/runs/{id}/replay", s.handleReplayRun).Methods("POST")

	// Comparison
	api.HandleFunc("/compare", s.handleCompare).Methods("POST")

	// Algorithms
	api.HandleFunc("/algorithms", s.handleListAlgorithms).Methods("GET")

	// Maps
	api.HandleFunc("/maps", s.handleListMaps).Methods("GET")
	api.HandleFunc("/maps", s.handleCreateMap).Methods("POST")
	api.HandleFunc("/maps/{name}", s.handleGetMap).Methods("GET")

	// Health
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)

	// Static files (if needed)
	s.router.PathPrefix("/").Handler(http.FileServer(http.Dir("./static/")))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// Run Handlers

func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var req service.RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	run, err := s.service.RunSearch(r.Context(), req)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	// Notify WebSocket clients waiting on new runs
	if s.hub != nil {
		s.hub.BroadcastEvent(run.ID, "run_created", run)
	}

	// Compact server log for observability
	fmt.Printf("[RUN] id=%s algo=%s map=%s found=%v cost=%v expanded=%d\n",
		run.ID, run.Algorithm, run.MapName, run.Result.Found, run.Result.Cost, run.Result.Expanded)

	respondJSON(w, http.StatusCreated, run)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	opts := service.ListOptions{SortBy: query.Get("sort")}
	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			opts.Limit = l
		}
	}

	runs, err := s.service.ListRuns(r.Context(), opts)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(runs),
		"runs":  runs,
	})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	runID := vars["id"]

	run, err := s.service.GetRun(r.Context(), runID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, run)
}

func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	runID := vars["id"]

	if err := s.service.DeleteRun(r.Context(), runID); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Run %s deleted", runID),
	})
}

func (s *Server) handleGetTrace(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	runID := vars["id"]

	// Parse query parameters
	opts := service.TraceOptions{
		Page:  1,
		Limit: 100,
		Order: "asc",
	}

	query := r.URL.Query()
	if pageStr := query.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			opts.Page = p
		}
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			opts.Limit = l
		}
	}

	if order := query.Get("order"); order == "asc" || order == "desc" {
		opts.Order = order
	}

	trace, err := s.service.GetTrace(r.Context(), runID, opts)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, trace)
}

func (s *Server) handleRenderRun(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	runID := vars["id"]

	run, err := s.service.GetRun(r.Context(), runID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	detail, err := s.service.GetMap(r.Context(), run.MapName)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	g, err := mapstore.Parse(detail.Layout)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	overlay := render.Overlay{Path: run.Result.Path}
	if r.URL.Query().Get("trace") == "true" {
		overlay.Trace = run.Result.Trace
	}

	switch r.URL.Query().Get("format") {
	case "png":
		w.Header().Set("Content-Type", "image/png")
		if err := render.PNG(w, g, overlay); err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
		}
	case "", "ascii":
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"run_id": runID,
			"lines":  render.ASCIILines(g, overlay),
		})
	default:
		respondError(w, http.StatusBadRequest, "format must be ascii or png")
	}
}

func (s *Server) handleReplayRun(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	runID := vars["id"]

	if s.hub == nil {
		respondError(w, http.StatusServiceUnavailable, "WebSocket hub not running")
		return
	}

	run, err := s.service.GetRun(r.Context(), runID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	interval := 50 * time.Millisecond
	if intervalStr := r.URL.Query().Get("interval_ms"); intervalStr != "" {
		if ms, err := strconv.Atoi(intervalStr); err == nil && ms >= 0 {
			interval = time.Duration(ms) * time.Millisecond
		}
	}

	go s.hub.Replay(runID, run.Result, interval)

	respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"message": fmt.Sprintf("Replaying run %s", runID),
		"frames":  run.Result.Expanded,
	})
}

// Comparison Handler

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req service.CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.Compare(r.Context(), req)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Algorithm Handler

func (s *Server) handleListAlgorithms(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"algorithms": s.service.ListAlgorithms(r.Context()),
	})
}

// Map Handlers

func (s *Server) handleListMaps(w http.ResponseWriter, r *http.Request) {
	maps, err := s.service.ListMaps(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, maps)
}

func (s *Server) handleGetMap(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	mapName := vars["name"]

	// Remove .txt extension if present
	mapName = strings.TrimSuffix(mapName, ".txt")

	detail, err := s.service.GetMap(r.Context(), mapName)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, detail)
}

func (s *Server) handleCreateMap(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string   `json:"name"`
		Layout []string `json:"layout"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Map name is required")
		return
	}

	if err := s.service.SaveMap(r.Context(), req.Name, req.Layout); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Failed to save map: %v", err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Map saved successfully",
		"map_id":  req.Name,
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	runID := r.URL.Query().Get("run")
	if runID == "" {
		http.Error(w, "run parameter required", http.StatusBadRequest)
		return
	}

	// Verify run exists
	if _, err := s.service.GetRun(r.Context(), runID); err != nil {
		http.Error(w, "Invalid run", http.StatusNotFound)
		return
	}

	// Upgrade to WebSocket
	s.hub.ServeWS(w, r, runID)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// statusForError maps service errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, search.ErrUnknownAlgorithm), errors.Is(err, search.ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrMapNotFound), strings.Contains(err.Error(), "not found"):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
