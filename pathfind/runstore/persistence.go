package runstore

import (
	"time"

	"github.com/pvera/gridpath/pathfind/search"
	"github.com/pvera/gridpath/pathfind/service"
)

// RunPersistence defines the interface for persisting runs
type RunPersistence interface {
	// Save persists a run to storage
	Save(run *service.Run) error

	// Load retrieves a run from storage by ID
	Load(id string) (*service.Run, error)

	// Delete removes a run from storage
	Delete(id string) error

	// ListAll returns all persisted run IDs
	ListAll() ([]string, error)

	// Exists checks if a run exists in storage
	Exists(id string) bool
}

// PersistedRunData represents the JSON structure for persisted runs
type PersistedRunData struct {
	ID             string         `json:"id"`
	MapName        string         `json:"map"`
	Algorithm      string         `json:"algorithm"`
	DepthLimit     int            `json:"depth_limit,omitempty"`
	Result         *search.Result `json:"result"`
	ElapsedNS      int64          `json:"elapsed_ns"`
	CreatedAt      time.Time      `json:"created_at"`
	LastAccessedAt time.Time      `json:"last_accessed_at"`
}
