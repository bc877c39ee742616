package runstore

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/pvera/gridpath/pathfind/service"
)

var (
	ErrRunNotFound      = errors.New("run not found")
	ErrRunAlreadyExists = errors.New("run already exists")
	ErrInvalidRun       = errors.New("invalid run")
)

// Manager handles search run lifecycle
type Manager struct {
	runs        map[string]*service.Run
	persistence RunPersistence
	mu          sync.RWMutex
}

// NewManager creates a new run manager
func NewManager() *Manager {
	return &Manager{
		runs: make(map[string]*service.Run),
	}
}

// NewManagerWithPersistence creates a new run manager with persistence
func NewManagerWithPersistence(persistence RunPersistence) *Manager {
	return &Manager{
		runs:        make(map[string]*service.Run),
		persistence: persistence,
	}
}

// Create stores a run under the given ID, generating one when it is empty.
// The run must already carry its result.
func (m *Manager) Create(id string, run *service.Run) (*service.Run, error) {
	if run == nil || run.Result == nil {
		return nil, fmt.Errorf("%w: missing result", ErrInvalidRun)
	}

	if id == "" {
		id = m.generateRunID()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Check if run already exists (case-insensitive)
	if m.runExists(id) {
		return nil, ErrRunAlreadyExists
	}

	run.ID = id
	now := time.Now()
	run.CreatedAt = now
	run.LastAccessedAt = now

	m.runs[strings.ToLower(id)] = run

	// Auto-save if persistence is enabled
	if m.persistence != nil {
		if err := m.persistence.Save(run); err != nil {
			// Log but don't fail the creation
			log.Printf("Warning: failed to persist run %s: %v", id, err)
		}
	}

	return run, nil
}

// Get retrieves a run by ID (case-insensitive)
func (m *Manager) Get(id string) (*service.Run, error) {
	m.mu.RLock()
	run, exists := m.runs[strings.ToLower(id)]
	m.mu.RUnlock()

	if exists {
		return run, nil
	}

	// Try loading from persistence if not in memory
	if m.persistence != nil && m.persistence.Exists(id) {
		run, err := m.persistence.Load(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load persisted run: %w", err)
		}

		m.mu.Lock()
		m.runs[strings.ToLower(id)] = run
		m.mu.Unlock()

		return run, nil
	}

	return nil, ErrRunNotFound
}

// List returns all stored runs
func (m *Manager) List() []*service.Run {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Run, 0, len(m.runs))
	for _, run := range m.runs {
		result = append(result, run)
	}

	return result
}

// Delete removes a run
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)
	inMemory := false

	if _, exists := m.runs[lowerID]; exists {
		delete(m.runs, lowerID)
		inMemory = true
	}

	// Delete from persistence if it exists
	if m.persistence != nil && m.persistence.Exists(id) {
		if err := m.persistence.Delete(id); err != nil {
			return fmt.Errorf("failed to delete persisted run: %w", err)
		}
		return nil
	}

	if !inMemory {
		return ErrRunNotFound
	}

	return nil
}

// DeleteFromMemory removes a run from memory only, leaving any persisted
// copy untouched. Used when the run's file was removed out from under us.
func (m *Manager) DeleteFromMemory(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)
	if _, exists := m.runs[lowerID]; !exists {
		return ErrRunNotFound
	}

	delete(m.runs, lowerID)
	return nil
}

// UpdateLastAccessed updates the last accessed time for a run
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	run, exists := m.runs[strings.ToLower(id)]
	if !exists {
		return ErrRunNotFound
	}

	run.LastAccessedAt = time.Now()
	return nil
}

// Save saves a specific run to persistence
func (m *Manager) Save(id string) error {
	if m.persistence == nil {
		return nil // No persistence configured
	}

	m.mu.RLock()
	run, exists := m.runs[strings.ToLower(id)]
	m.mu.RUnlock()

	if !exists {
		return ErrRunNotFound
	}

	return m.persistence.Save(run)
}

// CleanupExpiredRuns removes runs that haven't been accessed in the given
// duration and returns how many were removed.
func (m *Manager) CleanupExpiredRuns(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for id, run := range m.runs {
		if run.LastAccessedAt.Before(cutoff) {
			delete(m.runs, id)
			removed++
		}
	}

	return removed
}

// Count returns the number of stored runs
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.runs)
}

// LoadPersistedRuns loads all persisted runs into memory
func (m *Manager) LoadPersistedRuns() error {
	if m.persistence == nil {
		return nil // No persistence configured
	}

	runIDs, err := m.persistence.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list persisted runs: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	loaded := 0
	for _, id := range runIDs {
		if _, exists := m.runs[strings.ToLower(id)]; exists {
			continue
		}

		run, err := m.persistence.Load(id)
		if err != nil {
			log.Printf("Warning: failed to load persisted run %s: %v", id, err)
			continue
		}

		m.runs[strings.ToLower(id)] = run
		loaded++
	}

	if loaded > 0 {
		log.Printf("Loaded %d persisted runs from storage", loaded)
	}

	return nil
}

// generateRunID generates a random 8-character run ID
func (m *Manager) generateRunID() string {
	bytes := make([]byte, 4)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// runExists checks if a run exists (case-insensitive). Caller holds the lock.
func (m *Manager) runExists(id string) bool {
	_, exists := m.runs[strings.ToLower(id)]
	return exists
}
