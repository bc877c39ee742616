package service

import (
	"context"
	"errors"
	"time"

	"github.com/pvera/gridpath/pathfind/grid"
	"github.com/pvera/gridpath/pathfind/search"
)

// ErrMapNotFound is returned by MapManager implementations when no map with
// the requested name exists.
var ErrMapNotFound = errors.New("map not found")

// SearchService defines all search-related operations
type SearchService interface {
	// Run Management
	RunSearch(ctx context.Context, req RunRequest) (*RunInfo, error)
	GetRun(ctx context.Context, runID string) (*RunInfo, error)
	ListRuns(ctx context.Context, opts ListOptions) ([]*RunInfo, error)
	DeleteRun(ctx context.Context, runID string) error
	GetTrace(ctx context.Context, runID string, opts TraceOptions) (*TracePage, error)

	// Comparison
	Compare(ctx context.Context, req CompareRequest) (*CompareResult, error)

	// Algorithms
	ListAlgorithms(ctx context.Context) []string

	// Maps
	ListMaps(ctx context.Context) ([]*MapInfo, error)
	GetMap(ctx context.Context, name string) (*MapDetail, error)
	SaveMap(ctx context.Context, name string, layout []string) error
}

// RunManager defines run storage operations
type RunManager interface {
	Create(id string, run *Run) (*Run, error)
	Get(id string) (*Run, error)
	List() []*Run
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// MapManager handles map loading
type MapManager interface {
	LoadMap(name string) (*grid.Grid, error)
	ListMaps() ([]*MapInfo, error)
	GetDefault() (string, *grid.Grid)
	SaveMap(name string, layout []string) error
}

// Run represents a stored search execution
type Run struct {
	ID             string
	MapName        string
	Algorithm      string
	DepthLimit     int
	Result         *search.Result
	Elapsed        time.Duration
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
