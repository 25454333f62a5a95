package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	// Create temporary directory for testing
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	// Directory should not exist initially
	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	// Create directory
	err := CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	// Directory should now exist
	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	err = CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestPathExists(t *testing.T) {
	tempDir := t.TempDir()
	file := filepath.Join(tempDir, "latest.log")

	if PathExists(file) {
		t.Error("Expected missing file to not exist")
	}
	if PathExists("") {
		t.Error("Expected empty path to not exist")
	}
	if err := os.WriteFile(file, []byte("log"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if !PathExists(file) {
		t.Error("Expected created file to exist")
	}
}

func TestFirstExisting(t *testing.T) {
	tempDir := t.TempDir()
	instances := filepath.Join(tempDir, "instances")
	instance := filepath.Join(instances, "server-1")

	if got := FirstExisting(instance, instances, tempDir); got != tempDir {
		t.Errorf("Expected %s, got %s", tempDir, got)
	}

	if err := os.MkdirAll(instance, 0755); err != nil {
		t.Fatalf("Failed to create instance dir: %v", err)
	}
	if got := FirstExisting(instance, instances, tempDir); got != instance {
		t.Errorf("Expected %s, got %s", instance, got)
	}

	if got := FirstExisting(); got != "" {
		t.Errorf("Expected empty result, got %s", got)
	}
}

func TestShowItemInFolder_NonExistentFile(t *testing.T) {
	tempDir := t.TempDir()
	nonExistentFile := filepath.Join(tempDir, "crash-2024-01-01.txt")

	err := ShowItemInFolder(nonExistentFile)
	if err == nil {
		t.Fatal("Expected error for non-existent file")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("Expected 'does not exist' error, got: %v", err)
	}
}

func TestOpenPath_NonExistentFile(t *testing.T) {
	err := OpenPath(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("Expected error for non-existent path")
	}
}

func TestOpenURL_Empty(t *testing.T) {
	if err := OpenURL(""); err == nil {
		t.Error("Expected error for empty url")
	}
}

func TestDefaultDirs(t *testing.T) {
	launcherDir, err := DefaultLauncherDir()
	if err != nil {
		t.Skipf("No user config dir available: %v", err)
	}
	if filepath.Base(launcherDir) != LauncherDirName {
		t.Errorf("Expected launcher dir to end with '%s', got: %s", LauncherDirName, launcherDir)
	}

	dataDir, err := DefaultDataDir()
	if err != nil {
		t.Skipf("No home dir available: %v", err)
	}
	if filepath.Base(dataDir) != DataDirName {
		t.Errorf("Expected data dir to end with '%s', got: %s", DataDirName, dataDir)
	}
}
