package runstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pvera/gridpath/pathfind/service"
)

// FilePersistence implements RunPersistence using file system storage
type FilePersistence struct {
	runsDir string
}

// NewFilePersistence creates a new file-based run persistence layer
func NewFilePersistence(runsDir string) (*FilePersistence, error) {
	// Create runs directory if it doesn't exist
	if err := os.MkdirAll(runsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runs directory: %w", err)
	}

	return &FilePersistence{runsDir: runsDir}, nil
}

// Save persists a run to a JSON file
func (fp *FilePersistence) Save(run *service.Run) error {
	if run == nil {
		return fmt.Errorf("run cannot be nil")
	}

	data := PersistedRunData{
		ID:             run.ID,
		MapName:        run.MapName,
		Algorithm:      run.Algorithm,
		DepthLimit:     run.DepthLimit,
		Result:         run.Result,
		ElapsedNS:      int64(run.Elapsed),
		CreatedAt:      run.CreatedAt,
		LastAccessedAt: run.LastAccessedAt,
	}

	// Marshal to JSON with indentation for readability
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run data: %w", err)
	}

	filePath := fp.getFilePath(run.ID)
	if err := os.WriteFile(filePath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write run file: %w", err)
	}

	return nil
}

// Load retrieves a run from a JSON file
func (fp *FilePersistence) Load(id string) (*service.Run, error) {
	filePath := fp.getFilePath(id)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, ErrRunNotFound
	}

	jsonData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read run file: %w", err)
	}

	var data PersistedRunData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run data: %w", err)
	}

	if data.Result == nil {
		return nil, fmt.Errorf("%w: persisted run %s has no result", ErrInvalidRun, id)
	}

	return &service.Run{
		ID:             data.ID,
		MapName:        data.MapName,
		Algorithm:      data.Algorithm,
		DepthLimit:     data.DepthLimit,
		Result:         data.Result,
		Elapsed:        time.Duration(data.ElapsedNS),
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}, nil
}

// Delete removes a run file
func (fp *FilePersistence) Delete(id string) error {
	if !fp.Exists(id) {
		return ErrRunNotFound
	}

	if err := os.Remove(fp.getFilePath(id)); err != nil {
		return fmt.Errorf("failed to remove run file: %w", err)
	}

	return nil
}

// ListAll returns all persisted run IDs
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.runsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read runs directory: %w", err)
	}

	var runIDs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasSuffix(name, ".json") {
			runIDs = append(runIDs, strings.TrimSuffix(name, ".json"))
		}
	}

	return runIDs, nil
}

// Exists checks if a run file exists
func (fp *FilePersistence) Exists(id string) bool {
	_, err := os.Stat(fp.getFilePath(id))
	return err == nil
}

// getFilePath returns the full file path for a run ID
func (fp *FilePersistence) getFilePath(id string) string {
	return filepath.Join(fp.runsDir, fmt.Sprintf("%s.json", id))
}
