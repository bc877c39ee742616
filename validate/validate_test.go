package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeMapFile(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp("", "test_map_*.txt")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	t.Cleanup(func() { os.Remove(tmpfile.Name()) })

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write map: %v", err)
	}
	tmpfile.Close()
	return tmpfile.Name()
}

func TestValidateMap_ValidMap(t *testing.T) {
	path := writeMapFile(t, "OOOOO\nOSFGO\nOOOOO\n")

	result := validateMap(path)
	if !result.Valid {
		t.Errorf("Expected valid map, but got errors: %v", result.Errors)
	}

	if result.File != filepath.Base(path) {
		t.Errorf("Expected file name %s, got %s", filepath.Base(path), result.File)
	}
}

func TestValidateMap_MissingFile(t *testing.T) {
	result := validateMap("/non/existent/file.txt")
	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}

	found := false
	for _, err := range result.Errors {
		if contains(err, "Failed to read file") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'Failed to read file' error")
	}
}

func TestValidateMap_EmptyLayout(t *testing.T) {
	path := writeMapFile(t, "\n\n\n")

	result := validateMap(path)
	if result.Valid {
		t.Error("Expected invalid map due to empty layout")
	}

	found := false
	for _, err := range result.Errors {
		if contains(err, "Layout is empty") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'Layout is empty' error")
	}
}

func TestValidateMap_NoStart(t *testing.T) {
	path := writeMapFile(t, "FFF\nFGF\nFFF\n")

	result := validateMap(path)
	if result.Valid {
		t.Error("Expected invalid map due to missing start")
	}

	found := false
	for _, err := range result.Errors {
		if contains(err, "exactly 1 start") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'exactly 1 start' error")
	}
}

func TestValidateMap_DuplicateGoal(t *testing.T) {
	path := writeMapFile(t, "SGG\nFFF\n")

	result := validateMap(path)
	if result.Valid {
		t.Error("Expected invalid map due to duplicate goal")
	}

	found := false
	for _, err := range result.Errors {
		if contains(err, "exactly 1 goal") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'exactly 1 goal' error")
	}
}

func TestValidateMap_InvalidCharacter(t *testing.T) {
	path := writeMapFile(t, "SXG\nFFF\n")

	result := validateMap(path)
	if result.Valid {
		t.Error("Expected invalid map due to invalid character")
	}

	found := false
	for _, err := range result.Errors {
		if contains(err, "Invalid character 'X'") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'Invalid character' error")
	}
}

func TestValidateMap_InconsistentWidth(t *testing.T) {
	path := writeMapFile(t, "SFG\nFF\n")

	result := validateMap(path)
	if result.Valid {
		t.Error("Expected invalid map due to inconsistent width")
	}

	found := false
	for _, err := range result.Errors {
		if contains(err, "Inconsistent grid width") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'Inconsistent grid width' error")
	}
}

func TestValidateConnectivity_ValidLayout(t *testing.T) {
	layout := []string{
		"OOOOO",
		"OSFGO",
		"OOOOO",
	}

	result := validateConnectivity(layout)
	if !result.Valid {
		t.Errorf("Expected valid connectivity, but got errors: %v", result.Errors)
	}
}

func TestValidateConnectivity_UnreachableGoal(t *testing.T) {
	layout := []string{
		"SFOFG",
		"FFOFF",
	}

	result := validateConnectivity(layout)
	if result.Valid {
		t.Error("Expected invalid connectivity due to unreachable goal")
	}

	found := false
	for _, err := range result.Errors {
		if contains(err, "Connectivity failure") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'Connectivity failure' error")
	}
}

func TestValidateConnectivity_EmptyLayout(t *testing.T) {
	result := validateConnectivity([]string{})
	if result.Valid {
		t.Error("Expected invalid result for empty layout")
	}

	found := false
	for _, err := range result.Errors {
		if contains(err, "Cannot validate connectivity: empty layout") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'Cannot validate connectivity: empty layout' error")
	}
}

// Helper function to check if a string contains a substring
func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
