package mapstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pvera/gridpath/pathfind/grid"
	"github.com/pvera/gridpath/pathfind/service"
)

var (
	// ErrMapNotFound aliases the service-level sentinel so callers on either
	// side of the interface can match it with errors.Is.
	ErrMapNotFound = service.ErrMapNotFound
	ErrInvalidMap  = errors.New("invalid map")
)

// Manager handles map loading and caching
type Manager struct {
	mapDir      string
	defaultName string
	defaultMap  *grid.Grid
	maps        map[string]*grid.Grid
	mu          sync.RWMutex
}

// NewManager creates a new map manager
func NewManager(mapDir string) (*Manager, error) {
	// Ensure map directory exists
	if _, err := os.Stat(mapDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("map directory does not exist: %s", mapDir)
	}

	m := &Manager{
		mapDir: mapDir,
		maps:   make(map[string]*grid.Grid),
	}

	if err := m.loadDefaultMap(); err != nil {
		return nil, fmt.Errorf("failed to load default map: %w", err)
	}

	return m, nil
}

// LoadMap loads a map by name
func (m *Manager) LoadMap(name string) (*grid.Grid, error) {
	m.mu.RLock()
	// Check cache first
	if g, exists := m.maps[name]; exists {
		m.mu.RUnlock()
		return g, nil
	}
	m.mu.RUnlock()

	// Load from file
	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if g, exists := m.maps[name]; exists {
		return g, nil
	}

	// Add .txt extension if not present
	filename := name
	if !strings.HasSuffix(filename, ".txt") {
		filename = name + ".txt"
	}

	mapPath := filepath.Join(m.mapDir, filename)

	data, err := os.ReadFile(mapPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrMapNotFound
		}
		return nil, fmt.Errorf("failed to read map file: %w", err)
	}

	g, err := ParseText(string(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMap, err)
	}

	// Cache the map
	m.maps[name] = g
	return g, nil
}

// ListMaps returns information about all available maps
func (m *Manager) ListMaps() ([]*service.MapInfo, error) {
	entries, err := os.ReadDir(m.mapDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read map directory: %w", err)
	}

	var maps []*service.MapInfo

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".txt")

		// Try to load the map to get details; skip invalid files
		g, err := m.LoadMap(name)
		if err != nil {
			continue
		}

		info := mapInfo(name, g)
		info.Filename = entry.Name()
		maps = append(maps, info)
	}

	return maps, nil
}

// GetDefault returns the default map and its name
func (m *Manager) GetDefault() (string, *grid.Grid) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultName, m.defaultMap
}

// SetDefault sets the default map by name
func (m *Manager) SetDefault(name string) error {
	g, err := m.LoadMap(name)
	if err != nil {
		return err
	}

	m.setDefault(name, g)
	return nil
}

// SaveMap validates a layout and writes it to disk
func (m *Manager) SaveMap(name string, layout []string) error {
	// Validate before saving
	g, err := Parse(layout)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMap, err)
	}

	filename := name
	if !strings.HasSuffix(filename, ".txt") {
		filename = name + ".txt"
	}

	mapPath := filepath.Join(m.mapDir, filename)

	data := strings.Join(g.Layout(), "\n") + "\n"
	if err := os.WriteFile(mapPath, []byte(data), 0644); err != nil {
		return fmt.Errorf("failed to write map file: %w", err)
	}

	// Update cache
	m.mu.Lock()
	m.maps[strings.TrimSuffix(filename, ".txt")] = g
	m.mu.Unlock()

	return nil
}

// RefreshCache reloads all cached maps from disk
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.maps = make(map[string]*grid.Grid)
	m.mu.Unlock()

	// loadDefaultMap re-populates the cache through LoadMap, which takes the
	// lock itself.
	return m.loadDefaultMap()
}

// loadDefaultMap picks the default map: corridor.txt if present, otherwise
// the first available map, otherwise a built-in minimal one.
func (m *Manager) loadDefaultMap() error {
	if g, err := m.LoadMap("corridor"); err == nil {
		m.setDefault("corridor", g)
		return nil
	}

	maps, listErr := m.ListMaps()
	if listErr == nil && len(maps) > 0 {
		name := maps[0].MapID
		if g, err := m.LoadMap(name); err == nil {
			m.setDefault(name, g)
			return nil
		}
	}

	m.setDefault("default", m.createMinimalMap())
	return nil
}

func (m *Manager) setDefault(name string, g *grid.Grid) {
	m.mu.Lock()
	m.defaultName = name
	m.defaultMap = g
	m.mu.Unlock()
}

// createMinimalMap builds a tiny built-in map used when the map directory is
// empty.
func (m *Manager) createMinimalMap() *grid.Grid {
	g, err := Parse([]string{
		"OOOOO",
		"OSFGO",
		"OOOOO",
	})
	if err != nil {
		// The built-in layout is a constant; this cannot happen.
		panic(err)
	}
	return g
}

// mapInfo summarizes a loaded map
func mapInfo(name string, g *grid.Grid) *service.MapInfo {
	obstacles := 0
	for _, row := range g.Cells() {
		for _, cell := range row {
			if !cell.Passable() {
				obstacles++
			}
		}
	}

	return &service.MapInfo{
		MapID:     name,
		Height:    g.Height(),
		Width:     g.Width(),
		Start:     g.Start(),
		Goal:      g.Goal(),
		Obstacles: obstacles,
	}
}
