package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/pvera/gridpath/pathfind/grid"
	"github.com/pvera/gridpath/pathfind/search"
	"github.com/pvera/gridpath/pathfind/service"
	"github.com/pvera/gridpath/transport/websocket"
)

// MockSearchService implements service.SearchService for testing
type MockSearchService struct {
	RunSearchFunc      func(ctx context.Context, req service.RunRequest) (*service.RunInfo, error)
	GetRunFunc         func(ctx context.Context, runID string) (*service.RunInfo, error)
	ListRunsFunc       func(ctx context.Context, opts service.ListOptions) ([]*service.RunInfo, error)
	DeleteRunFunc      func(ctx context.Context, runID string) error
	GetTraceFunc       func(ctx context.Context, runID string, opts service.TraceOptions) (*service.TracePage, error)
	CompareFunc        func(ctx context.Context, req service.CompareRequest) (*service.CompareResult, error)
	ListAlgorithmsFunc func(ctx context.Context) []string
	ListMapsFunc       func(ctx context.Context) ([]*service.MapInfo, error)
	GetMapFunc         func(ctx context.Context, name string) (*service.MapDetail, error)
	SaveMapFunc        func(ctx context.Context, name string, layout []string) error
}

func corridorRunInfo(id string) *service.RunInfo {
	path := []grid.State{{Row: 1, Col: 1}, {Row: 1, Col: 2}, {Row: 1, Col: 3}}
	return &service.RunInfo{
		ID:        id,
		MapName:   "corridor",
		Algorithm: search.AlgoBFS,
		Result: &search.Result{
			Found:       true,
			Path:        path,
			Cost:        2,
			Expanded:    3,
			FrontierMax: 2,
			Trace:       path,
		},
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
}

func (m *MockSearchService) RunSearch(ctx context.Context, req service.RunRequest) (*service.RunInfo, error) {
	if m.RunSearchFunc != nil {
		return m.RunSearchFunc(ctx, req)
	}
	return corridorRunInfo("run-123"), nil
}

func (m *MockSearchService) GetRun(ctx context.Context, runID string) (*service.RunInfo, error) {
	if m.GetRunFunc != nil {
		return m.GetRunFunc(ctx, runID)
	}
	return corridorRunInfo(runID), nil
}

func (m *MockSearchService) ListRuns(ctx context.Context, opts service.ListOptions) ([]*service.RunInfo, error) {
	if m.ListRunsFunc != nil {
		return m.ListRunsFunc(ctx, opts)
	}
	return []*service.RunInfo{}, nil
}

func (m *MockSearchService) DeleteRun(ctx context.Context, runID string) error {
	if m.DeleteRunFunc != nil {
		return m.DeleteRunFunc(ctx, runID)
	}
	return nil
}

func (m *MockSearchService) GetTrace(ctx context.Context, runID string, opts service.TraceOptions) (*service.TracePage, error) {
	if m.GetTraceFunc != nil {
		return m.GetTraceFunc(ctx, runID, opts)
	}
	return &service.TracePage{
		Trace:      []grid.State{},
		Page:       opts.Page,
		PageSize:   opts.Limit,
		TotalPages: 1,
	}, nil
}

func (m *MockSearchService) Compare(ctx context.Context, req service.CompareRequest) (*service.CompareResult, error) {
	if m.CompareFunc != nil {
		return m.CompareFunc(ctx, req)
	}
	return &service.CompareResult{MapName: req.MapName}, nil
}

func (m *MockSearchService) ListAlgorithms(ctx context.Context) []string {
	if m.ListAlgorithmsFunc != nil {
		return m.ListAlgorithmsFunc(ctx)
	}
	return []string{search.AlgoBFS, search.AlgoDFS}
}

func (m *MockSearchService) ListMaps(ctx context.Context) ([]*service.MapInfo, error) {
	if m.ListMapsFunc != nil {
		return m.ListMapsFunc(ctx)
	}
	return []*service.MapInfo{}, nil
}

func (m *MockSearchService) GetMap(ctx context.Context, name string) (*service.MapDetail, error) {
	if m.GetMapFunc != nil {
		return m.GetMapFunc(ctx, name)
	}
	return &service.MapDetail{
		MapInfo: service.MapInfo{MapID: name, Height: 3, Width: 5},
		Layout:  []string{"OOOOO", "OSFGO", "OOOOO"},
	}, nil
}

func (m *MockSearchService) SaveMap(ctx context.Context, name string, layout []string) error {
	if m.SaveMapFunc != nil {
		return m.SaveMapFunc(ctx, name, layout)
	}
	return nil
}

// Test helpers
func setupTestServer(mockService *MockSearchService) *Server {
	hub := websocket.NewHub()
	go hub.Run()
	return NewServer(mockService, hub)
}

func makeRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	if err := json.Unmarshal(w.Body.Bytes(), target); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
}

// Run Management Tests

func TestCreateRun(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		setupMock      func(*MockSearchService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:        "Run BFS on corridor",
			requestBody: map[string]interface{}{"map": "corridor", "algorithm": "bfs"},
			setupMock: func(m *MockSearchService) {
				m.RunSearchFunc = func(ctx context.Context, req service.RunRequest) (*service.RunInfo, error) {
					if req.MapName != "corridor" || req.Algorithm != "bfs" {
						t.Errorf("Unexpected request %+v", req)
					}
					return corridorRunInfo("run-123"), nil
				}
			},
			expectedStatus: http.StatusCreated,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.RunInfo
				parseResponse(t, w, &resp)
				if resp.ID != "run-123" {
					t.Errorf("Expected run ID run-123, got %s", resp.ID)
				}
				if resp.Result.Cost != 2 {
					t.Errorf("Expected cost 2, got %v", resp.Result.Cost)
				}
			},
		},
		{
			name:        "Unknown algorithm",
			requestBody: map[string]interface{}{"map": "corridor", "algorithm": "dijkstra"},
			setupMock: func(m *MockSearchService) {
				m.RunSearchFunc = func(ctx context.Context, req service.RunRequest) (*service.RunInfo, error) {
					return nil, fmt.Errorf("%w: %q", search.ErrUnknownAlgorithm, req.Algorithm)
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Unknown map",
			requestBody: map[string]interface{}{"map": "atlantis", "algorithm": "bfs"},
			setupMock: func(m *MockSearchService) {
				m.RunSearchFunc = func(ctx context.Context, req service.RunRequest) (*service.RunInfo, error) {
					return nil, fmt.Errorf("%w: '%s'", service.ErrMapNotFound, req.MapName)
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockSearchService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := makeRequest("POST", "/api/runs", tt.requestBody)

			server.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestListRuns(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    string
		setupMock      func(*MockSearchService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:        "List multiple runs",
			queryParams: "",
			setupMock: func(m *MockSearchService) {
				m.ListRunsFunc = func(ctx context.Context, opts service.ListOptions) ([]*service.RunInfo, error) {
					return []*service.RunInfo{corridorRunInfo("a"), corridorRunInfo("b")}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]interface{}
				parseResponse(t, w, &resp)
				if resp["count"].(float64) != 2 {
					t.Errorf("Expected count 2, got %v", resp["count"])
				}
			},
		},
		{
			name:        "Sort and limit query parameters",
			queryParams: "?sort=expanded&limit=5",
			setupMock: func(m *MockSearchService) {
				m.ListRunsFunc = func(ctx context.Context, opts service.ListOptions) ([]*service.RunInfo, error) {
					if opts.SortBy != "expanded" || opts.Limit != 5 {
						t.Errorf("Expected sort=expanded limit=5, got %+v", opts)
					}
					return []*service.RunInfo{}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "Unknown sort key",
			queryParams: "?sort=bogus",
			setupMock: func(m *MockSearchService) {
				m.ListRunsFunc = func(ctx context.Context, opts service.ListOptions) ([]*service.RunInfo, error) {
					return nil, fmt.Errorf("%w: unknown sort key", search.ErrInvalidParameter)
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockSearchService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := makeRequest("GET", "/api/runs"+tt.queryParams, nil)

			server.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestGetRun(t *testing.T) {
	tests := []struct {
		name           string
		runID          string
		setupMock      func(*MockSearchService)
		expectedStatus int
	}{
		{
			name:  "Get existing run",
			runID: "run-123",
			setupMock: func(m *MockSearchService) {
				m.GetRunFunc = func(ctx context.Context, runID string) (*service.RunInfo, error) {
					if runID != "run-123" {
						return nil, fmt.Errorf("run not found")
					}
					return corridorRunInfo(runID), nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "Run not found",
			runID: "nonexistent",
			setupMock: func(m *MockSearchService) {
				m.GetRunFunc = func(ctx context.Context, runID string) (*service.RunInfo, error) {
					return nil, fmt.Errorf("run not found")
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockSearchService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := makeRequest("GET", "/api/runs/"+tt.runID, nil)
			req = mux.SetURLVars(req, map[string]string{"id": tt.runID})

			server.handleGetRun(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestDeleteRun(t *testing.T) {
	mockService := &MockSearchService{
		DeleteRunFunc: func(ctx context.Context, runID string) error {
			if runID != "run-123" {
				return fmt.Errorf("run not found")
			}
			return nil
		},
	}

	server := setupTestServer(mockService)

	w := httptest.NewRecorder()
	req := makeRequest("DELETE", "/api/runs/run-123", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "run-123"})
	server.handleDeleteRun(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	var resp map[string]string
	parseResponse(t, w, &resp)
	if resp["message"] != "Run run-123 deleted" {
		t.Errorf("Unexpected message: %s", resp["message"])
	}

	w = httptest.NewRecorder()
	req = makeRequest("DELETE", "/api/runs/nonexistent", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "nonexistent"})
	server.handleDeleteRun(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestGetTrace(t *testing.T) {
	tests := []struct {
		name           string
		runID          string
		queryParams    string
		setupMock      func(*MockSearchService)
		expectedStatus int
	}{
		{
			name:        "Default pagination",
			runID:       "run-123",
			queryParams: "",
			setupMock: func(m *MockSearchService) {
				m.GetTraceFunc = func(ctx context.Context, runID string, opts service.TraceOptions) (*service.TracePage, error) {
					if opts.Page != 1 || opts.Limit != 100 {
						t.Errorf("Expected default page=1, limit=100, got page=%d, limit=%d", opts.Page, opts.Limit)
					}
					return &service.TracePage{Page: 1, PageSize: 100, TotalPages: 1}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "Custom pagination parameters",
			runID:       "run-123",
			queryParams: "?page=2&limit=10&order=desc",
			setupMock: func(m *MockSearchService) {
				m.GetTraceFunc = func(ctx context.Context, runID string, opts service.TraceOptions) (*service.TracePage, error) {
					if opts.Page != 2 || opts.Limit != 10 || opts.Order != "desc" {
						t.Errorf("Expected page=2, limit=10, order=desc, got %+v", opts)
					}
					return &service.TracePage{Page: 2, PageSize: 10}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "Run not found",
			runID:       "nonexistent",
			queryParams: "",
			setupMock: func(m *MockSearchService) {
				m.GetTraceFunc = func(ctx context.Context, runID string, opts service.TraceOptions) (*service.TracePage, error) {
					return nil, fmt.Errorf("run not found")
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockSearchService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/api/runs/"+tt.runID+"/trace"+tt.queryParams, nil)
			req = mux.SetURLVars(req, map[string]string{"id": tt.runID})

			server.handleGetTrace(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestRenderRun(t *testing.T) {
	mockService := &MockSearchService{}
	server := setupTestServer(mockService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/runs/run-123/render", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "run-123"})
	server.handleRenderRun(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resp map[string]interface{}
	parseResponse(t, w, &resp)
	lines := resp["lines"].([]interface{})
	if len(lines) != 3 {
		t.Fatalf("Expected 3 rendered lines, got %d", len(lines))
	}
	if lines[1].(string) != "OS*GO" {
		t.Errorf("Expected path overlay 'OS*GO', got %q", lines[1])
	}

	// PNG format returns an image.
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/api/runs/run-123/render?format=png", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "run-123"})
	server.handleRenderRun(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %s", ct)
	}

	// Unknown format is rejected.
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/api/runs/run-123/render?format=bmp", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "run-123"})
	server.handleRenderRun(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unknown format, got %d", w.Code)
	}
}

// Comparison Tests

func TestCompare(t *testing.T) {
	mockService := &MockSearchService{
		CompareFunc: func(ctx context.Context, req service.CompareRequest) (*service.CompareResult, error) {
			if req.MapName != "corridor" {
				t.Errorf("Expected map 'corridor', got %q", req.MapName)
			}
			return &service.CompareResult{
				MapName: req.MapName,
				Rows: []service.CompareRow{
					{Algorithm: search.AlgoBFS, Found: true, Cost: 2},
					{Algorithm: search.AlgoDFS, Found: true, Cost: 2},
				},
			}, nil
		},
	}

	server := setupTestServer(mockService)
	w := httptest.NewRecorder()
	req := makeRequest("POST", "/api/compare", map[string]interface{}{"map": "corridor"})

	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resp service.CompareResult
	parseResponse(t, w, &resp)
	if len(resp.Rows) != 2 {
		t.Errorf("Expected 2 rows, got %d", len(resp.Rows))
	}
}

// Algorithm and Map Tests

func TestListAlgorithms(t *testing.T) {
	server := setupTestServer(&MockSearchService{})
	w := httptest.NewRecorder()
	req := makeRequest("GET", "/api/algorithms", nil)

	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resp map[string][]string
	parseResponse(t, w, &resp)
	if len(resp["algorithms"]) != 2 {
		t.Errorf("Expected 2 algorithms, got %v", resp["algorithms"])
	}
}

func TestListMaps(t *testing.T) {
	mockService := &MockSearchService{
		ListMapsFunc: func(ctx context.Context) ([]*service.MapInfo, error) {
			return []*service.MapInfo{
				{MapID: "corridor", Height: 3, Width: 5},
				{MapID: "maze", Height: 5, Width: 7},
			}, nil
		},
	}

	server := setupTestServer(mockService)
	w := httptest.NewRecorder()
	req := makeRequest("GET", "/api/maps", nil)

	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resp []*service.MapInfo
	parseResponse(t, w, &resp)
	if len(resp) != 2 {
		t.Errorf("Expected 2 maps, got %d", len(resp))
	}
}

func TestGetMap(t *testing.T) {
	tests := []struct {
		name           string
		mapName        string
		setupMock      func(*MockSearchService)
		expectedStatus int
	}{
		{
			name:    "Get existing map",
			mapName: "corridor",
			setupMock: func(m *MockSearchService) {
				m.GetMapFunc = func(ctx context.Context, name string) (*service.MapDetail, error) {
					if name != "corridor" {
						return nil, fmt.Errorf("map not found")
					}
					return &service.MapDetail{
						MapInfo: service.MapInfo{MapID: name, Height: 3, Width: 5},
						Layout:  []string{"OOOOO", "OSFGO", "OOOOO"},
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "Strip .txt extension",
			mapName: "corridor.txt",
			setupMock: func(m *MockSearchService) {
				m.GetMapFunc = func(ctx context.Context, name string) (*service.MapDetail, error) {
					if name != "corridor" {
						t.Errorf("Expected name 'corridor' (without .txt), got %s", name)
					}
					return &service.MapDetail{MapInfo: service.MapInfo{MapID: name}}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "Map not found",
			mapName: "nonexistent",
			setupMock: func(m *MockSearchService) {
				m.GetMapFunc = func(ctx context.Context, name string) (*service.MapDetail, error) {
					return nil, service.ErrMapNotFound
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockSearchService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := makeRequest("GET", "/api/maps/"+tt.mapName, nil)
			req = mux.SetURLVars(req, map[string]string{"name": tt.mapName})

			server.handleGetMap(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestCreateMap(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		setupMock      func(*MockSearchService)
		expectedStatus int
	}{
		{
			name:        "Save valid map",
			requestBody: map[string]interface{}{"name": "fresh", "layout": []string{"SFG"}},
			setupMock: func(m *MockSearchService) {
				m.SaveMapFunc = func(ctx context.Context, name string, layout []string) error {
					if name != "fresh" || len(layout) != 1 {
						t.Errorf("Unexpected save: %s %v", name, layout)
					}
					return nil
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing name",
			requestBody:    map[string]interface{}{"layout": []string{"SFG"}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Invalid layout",
			requestBody: map[string]interface{}{"name": "bad", "layout": []string{"FFF"}},
			setupMock: func(m *MockSearchService) {
				m.SaveMapFunc = func(ctx context.Context, name string, layout []string) error {
					return fmt.Errorf("invalid map: missing start cell")
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockSearchService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := makeRequest("POST", "/api/maps", tt.requestBody)

			server.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestWebSocketEndpoint(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    string
		setupMock      func(*MockSearchService)
		expectedStatus int
	}{
		{
			name:           "Missing run parameter",
			queryParams:    "",
			setupMock:      nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Invalid run",
			queryParams: "?run=invalid",
			setupMock: func(m *MockSearchService) {
				m.GetRunFunc = func(ctx context.Context, runID string) (*service.RunInfo, error) {
					return nil, fmt.Errorf("run not found")
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockSearchService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/ws"+tt.queryParams, nil)

			server.handleWebSocket(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	server := setupTestServer(&MockSearchService{})
	w := httptest.NewRecorder()
	req := makeRequest("GET", "/api/health", nil)

	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resp map[string]string
	parseResponse(t, w, &resp)
	if resp["status"] != "healthy" {
		t.Errorf("Expected healthy status, got %s", resp["status"])
	}
}
