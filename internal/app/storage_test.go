package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()

	if err := WriteFileAtomic(dir, "test.ics", []byte("BEGIN:VCALENDAR\n")); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "test.ics"))
	if err != nil {
		t.Fatalf("Failed to read written file: %v", err)
	}
	if string(data) != "BEGIN:VCALENDAR\n" {
		t.Errorf("Unexpected file content: %q", data)
	}

	// No temp file left behind
	if _, err := os.Stat(filepath.Join(dir, "test.ics"+TmpSuffix)); !os.IsNotExist(err) {
		t.Error("Temp file should be renamed away")
	}

	// Overwriting in place works
	if err := WriteFileAtomic(dir, "test.ics", []byte("updated")); err != nil {
		t.Fatalf("Overwrite failed: %v", err)
	}
	data, _ = os.ReadFile(filepath.Join(dir, "test.ics"))
	if string(data) != "updated" {
		t.Errorf("Expected overwritten content, got %q", data)
	}
}

func TestManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()

	m := NewManifest(2026)
	m.Add("california_legislative_calendar_2026.ics", []byte("calendar data"), 12, 160)

	if err := m.SaveManifest(dir); err != nil {
		t.Fatalf("SaveManifest failed: %v", err)
	}

	loaded, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("LoadManifest failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected a manifest, got nil")
	}

	if loaded.Year != 2026 {
		t.Errorf("Expected year 2026, got %d", loaded.Year)
	}
	if len(loaded.Files) != 1 {
		t.Fatalf("Expected 1 file entry, got %d", len(loaded.Files))
	}

	entry := loaded.Files[0]
	if entry.Name != "california_legislative_calendar_2026.ics" {
		t.Errorf("Unexpected file name: %s", entry.Name)
	}
	if entry.Blocks != 12 || entry.Days != 160 {
		t.Errorf("Unexpected counts: %d blocks, %d days", entry.Blocks, entry.Days)
	}
	if len(entry.SHA256) != 64 {
		t.Errorf("Expected hex sha256 checksum, got %q", entry.SHA256)
	}
}

func TestLoadManifestMissing(t *testing.T) {
	m, err := LoadManifest(t.TempDir())
	if err != nil {
		t.Fatalf("Missing manifest should not be an error, got %v", err)
	}
	if m != nil {
		t.Error("Expected nil manifest for first run")
	}
}

func TestVerifyStableNames(t *testing.T) {
	prev := NewManifest(2026)
	prev.Add("california_legislative_calendar_2026.ics", []byte("a"), 1, 1)
	prev.Add("federal_legislative_calendar_2026.ics", []byte("b"), 1, 1)

	current := NewManifest(2026)
	current.Add("california_legislative_calendar_2026.ics", []byte("a updated"), 2, 2)
	current.Add("federal_legislative_calendar_2026.ics", []byte("b updated"), 2, 2)
	current.Add("wyoming_legislative_calendar_2026.ics", []byte("new"), 1, 1)

	// New files may appear, existing names must survive
	if err := current.VerifyStableNames(prev); err != nil {
		t.Errorf("Superset of previous names should verify, got %v", err)
	}

	// First run has no previous manifest
	if err := current.VerifyStableNames(nil); err != nil {
		t.Errorf("Nil previous manifest should verify, got %v", err)
	}

	// A vanished name breaks previously distributed URLs
	dropped := NewManifest(2026)
	dropped.Add("federal_legislative_calendar_2026.ics", []byte("b"), 1, 1)
	err := dropped.VerifyStableNames(prev)
	if err == nil {
		t.Fatal("Expected error when a published filename disappears")
	}
	if !strings.Contains(err.Error(), "california_legislative_calendar_2026.ics") {
		t.Errorf("Error should name the vanished file, got: %v", err)
	}
}
