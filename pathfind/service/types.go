package service

import (
	"time"

	"github.com/pvera/gridpath/pathfind/grid"
	"github.com/pvera/gridpath/pathfind/search"
)

// RunRequest describes a search to execute
type RunRequest struct {
	MapName    string `json:"map"`
	Algorithm  string `json:"algorithm"`
	DepthLimit int    `json:"depth_limit,omitempty"` // only consulted by DLS
}

// RunInfo provides information about a stored run
type RunInfo struct {
	ID             string         `json:"id"`
	MapName        string         `json:"map"`
	Algorithm      string         `json:"algorithm"`
	DepthLimit     int            `json:"depth_limit,omitempty"`
	Result         *search.Result `json:"result"`
	ElapsedMS      float64        `json:"elapsed_ms"`
	CreatedAt      time.Time      `json:"created_at"`
	LastAccessedAt time.Time      `json:"last_accessed_at"`
}

// ListOptions configures run listing
type ListOptions struct {
	SortBy string `json:"sort_by"` // "created", "expanded" or "cost"
	Limit  int    `json:"limit"`
}

// TraceOptions configures expansion trace retrieval
type TraceOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// TracePage contains a paginated slice of a run's expansion trace
type TracePage struct {
	Trace       []grid.State `json:"trace"`
	TotalStates int          `json:"total_states"`
	Page        int          `json:"page"`
	PageSize    int          `json:"page_size"`
	TotalPages  int          `json:"total_pages"`
	HasNext     bool         `json:"has_next"`
	HasPrevious bool         `json:"has_previous"`
}

// CompareRequest describes a multi-algorithm comparison on one map
type CompareRequest struct {
	MapName    string   `json:"map"`
	Algorithms []string `json:"algorithms,omitempty"` // empty means all registered
	DepthLimit int      `json:"depth_limit,omitempty"`
}

// CompareRow is one algorithm's line in a comparison
type CompareRow struct {
	Algorithm   string  `json:"algorithm"`
	Found       bool    `json:"found"`
	Cost        float64 `json:"cost"`
	PathLen     int     `json:"path_len"`
	Expanded    int     `json:"expanded"`
	FrontierMax int     `json:"frontier_max"`
	ElapsedMS   float64 `json:"elapsed_ms"`
	Error       string  `json:"error,omitempty"`
}

// CompareResult contains the comparison rows for one map
type CompareResult struct {
	MapName string       `json:"map"`
	Rows    []CompareRow `json:"rows"`
}

// MapInfo provides summary information about a stored map
type MapInfo struct {
	Filename  string     `json:"filename"`
	MapID     string     `json:"map_id"` // identifier to use in run requests
	Height    int        `json:"height"`
	Width     int        `json:"width"`
	Start     grid.State `json:"start"`
	Goal      grid.State `json:"goal"`
	Obstacles int        `json:"obstacles"`
}

// MapDetail is the full view of one map, layout included
type MapDetail struct {
	MapInfo
	Layout []string `json:"layout"`
}
