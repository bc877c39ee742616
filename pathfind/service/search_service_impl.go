package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/pvera/gridpath/pathfind/grid"
	"github.com/pvera/gridpath/pathfind/search"
)

// searchServiceImpl implements the SearchService interface
type searchServiceImpl struct {
	runs     RunManager
	maps     MapManager
	registry *search.Registry
	mu       sync.RWMutex
}

// NewSearchService creates a new search service instance
func NewSearchService(runs RunManager, maps MapManager, registry *search.Registry) SearchService {
	if registry == nil {
		registry = search.Default()
	}
	return &searchServiceImpl{
		runs:     runs,
		maps:     maps,
		registry: registry,
	}
}

// RunSearch executes a search and stores the result as a run
func (s *searchServiceImpl) RunSearch(ctx context.Context, req RunRequest) (*RunInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn, err := s.registry.Get(req.Algorithm)
	if err != nil {
		return nil, err
	}

	mapName := req.MapName
	g, err := s.loadMapLocked(mapName)
	if err != nil {
		return nil, err
	}
	if mapName == "" {
		mapName, _ = s.maps.GetDefault()
	}

	opts := search.Options{DepthLimit: req.DepthLimit}
	started := time.Now()
	result, err := fn(g, opts)
	elapsed := time.Since(started)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	// Let the run manager generate a proper ID
	run, err := s.runs.Create("", &Run{
		MapName:    mapName,
		Algorithm:  req.Algorithm,
		DepthLimit: req.DepthLimit,
		Result:     result,
		Elapsed:    elapsed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	return runInfo(run), nil
}

// GetRun retrieves run information
func (s *searchServiceImpl) GetRun(ctx context.Context, runID string) (*RunInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, err := s.runs.Get(runID)
	if err != nil {
		return nil, fmt.Errorf("run not found: %w", err)
	}

	s.runs.UpdateLastAccessed(runID)

	return runInfo(run), nil
}

// ListRuns returns stored runs, sorted and truncated per opts
func (s *searchServiceImpl) ListRuns(ctx context.Context, opts ListOptions) ([]*RunInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := s.runs.List()

	switch opts.SortBy {
	case "expanded":
		sort.Slice(runs, func(i, j int) bool {
			return runs[i].Result.Expanded < runs[j].Result.Expanded
		})
	case "cost":
		sort.Slice(runs, func(i, j int) bool {
			return runs[i].Result.Cost < runs[j].Result.Cost
		})
	case "", "created":
		// Most recent first.
		sort.Slice(runs, func(i, j int) bool {
			return runs[i].CreatedAt.After(runs[j].CreatedAt)
		})
	default:
		return nil, fmt.Errorf("%w: unknown sort key %q", search.ErrInvalidParameter, opts.SortBy)
	}

	if opts.Limit > 0 && len(runs) > opts.Limit {
		runs = runs[:opts.Limit]
	}

	result := make([]*RunInfo, 0, len(runs))
	for _, run := range runs {
		result = append(result, runInfo(run))
	}
	return result, nil
}

// DeleteRun removes a run
func (s *searchServiceImpl) DeleteRun(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.runs.Delete(runID)
}

// GetTrace returns a paginated slice of a run's expansion trace
func (s *searchServiceImpl) GetTrace(ctx context.Context, runID string, opts TraceOptions) (*TracePage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, err := s.runs.Get(runID)
	if err != nil {
		return nil, fmt.Errorf("run not found: %w", err)
	}

	trace := run.Result.Trace
	total := len(trace)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 100
	}
	if opts.Limit > 1000 {
		opts.Limit = 1000
	}
	if opts.Order == "" {
		opts.Order = "asc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	page := make([]grid.State, 0, opts.Limit)
	if opts.Order == "desc" {
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			page = append(page, trace[i])
		}
	} else if start < total {
		page = append(page, trace[start:end]...)
	}

	return &TracePage{
		Trace:       page,
		TotalStates: total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// Compare runs several algorithms on the same map and tabulates the results
func (s *searchServiceImpl) Compare(ctx context.Context, req CompareRequest) (*CompareResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.loadMapLocked(req.MapName)
	if err != nil {
		return nil, err
	}
	mapName := req.MapName
	if mapName == "" {
		mapName, _ = s.maps.GetDefault()
	}

	names := req.Algorithms
	if len(names) == 0 {
		names = s.registry.Names()
	}

	opts := search.Options{DepthLimit: req.DepthLimit}
	rows := make([]CompareRow, 0, len(names))
	for _, name := range names {
		row := CompareRow{Algorithm: name}

		started := time.Now()
		result, err := s.registry.Run(name, g, opts)
		row.ElapsedMS = float64(time.Since(started)) / float64(time.Millisecond)

		if err != nil {
			row.Error = err.Error()
		} else {
			row.Found = result.Found
			row.Cost = result.Cost
			row.PathLen = result.PathLen()
			row.Expanded = result.Expanded
			row.FrontierMax = result.FrontierMax
		}
		rows = append(rows, row)
	}

	return &CompareResult{MapName: mapName, Rows: rows}, nil
}

// ListAlgorithms returns the registered algorithm names
func (s *searchServiceImpl) ListAlgorithms(ctx context.Context) []string {
	return s.registry.Names()
}

// ListMaps returns available maps
func (s *searchServiceImpl) ListMaps(ctx context.Context) ([]*MapInfo, error) {
	return s.maps.ListMaps()
}

// GetMap loads a map and returns its full detail, layout included
func (s *searchServiceImpl) GetMap(ctx context.Context, name string) (*MapDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, err := s.loadMapLocked(name)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name, _ = s.maps.GetDefault()
	}

	obstacles := 0
	for _, row := range g.Cells() {
		for _, cell := range row {
			if !cell.Passable() {
				obstacles++
			}
		}
	}

	return &MapDetail{
		MapInfo: MapInfo{
			MapID:     name,
			Height:    g.Height(),
			Width:     g.Width(),
			Start:     g.Start(),
			Goal:      g.Goal(),
			Obstacles: obstacles,
		},
		Layout: g.Layout(),
	}, nil
}

// SaveMap persists a map layout to storage
func (s *searchServiceImpl) SaveMap(ctx context.Context, name string, layout []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.maps.SaveMap(name, layout)
}

// loadMapLocked resolves a map name to a grid, falling back to the default
// map for an empty name. Not-found errors carry the available map IDs.
func (s *searchServiceImpl) loadMapLocked(name string) (*grid.Grid, error) {
	if name == "" {
		_, g := s.maps.GetDefault()
		if g == nil {
			return nil, errors.New("no default map configured")
		}
		return g, nil
	}

	g, err := s.maps.LoadMap(name)
	if err != nil {
		if errors.Is(err, ErrMapNotFound) {
			if available, listErr := s.maps.ListMaps(); listErr == nil && len(available) > 0 {
				ids := make([]string, 0, len(available))
				for _, m := range available {
					ids = append(ids, m.MapID)
				}
				return nil, fmt.Errorf("%w: '%s'. Available maps: %v", ErrMapNotFound, name, ids)
			}
			return nil, fmt.Errorf("%w: '%s'. Use /api/maps to list available maps", ErrMapNotFound, name)
		}
		return nil, fmt.Errorf("failed to load map %s: %w", name, err)
	}
	return g, nil
}

// runInfo converts a stored run to its API view
func runInfo(run *Run) *RunInfo {
	return &RunInfo{
		ID:             run.ID,
		MapName:        run.MapName,
		Algorithm:      run.Algorithm,
		DepthLimit:     run.DepthLimit,
		Result:         run.Result,
		ElapsedMS:      float64(run.Elapsed) / float64(time.Millisecond),
		CreatedAt:      run.CreatedAt,
		LastAccessedAt: run.LastAccessedAt,
	}
}
