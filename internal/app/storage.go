package app

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Manifest records the files written by a generation run. It is published
// alongside the calendars and used to enforce stable filenames: once a
// calendar name has been published, later runs must produce it again,
// because subscribers reference it by fixed URL.
type Manifest struct {
	GeneratedAt string          `json:"generated_at"`
	Year        int             `json:"year"`
	Files       []ManifestEntry `json:"files"`
}

// ManifestEntry describes one generated calendar file.
type ManifestEntry struct {
	Name   string `json:"name"`
	SHA256 string `json:"sha256"`
	Blocks int    `json:"blocks"`
	Days   int    `json:"days"`
}

// NewManifest creates an empty manifest for the given year.
func NewManifest(year int) *Manifest {
	return &Manifest{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Year:        year,
	}
}

// Add records a generated file in the manifest.
func (m *Manifest) Add(name string, data []byte, blocks, days int) {
	sum := sha256.Sum256(data)
	m.Files = append(m.Files, ManifestEntry{
		Name:   name,
		SHA256: hex.EncodeToString(sum[:]),
		Blocks: blocks,
		Days:   days,
	})
}

// Names returns the filenames recorded in the manifest.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Files))
	for _, f := range m.Files {
		names = append(names, f.Name)
	}
	return names
}

// VerifyStableNames checks that every filename from a previous run is still
// produced. A vanished name means previously distributed subscription URLs
// would silently break.
func (m *Manifest) VerifyStableNames(prev *Manifest) error {
	if prev == nil {
		return nil
	}

	current := make(map[string]bool, len(m.Files))
	for _, f := range m.Files {
		current[f.Name] = true
	}

	for _, f := range prev.Files {
		if !current[f.Name] {
			return fmt.Errorf("previously published calendar %q is no longer generated; renaming breaks existing subscriptions", f.Name)
		}
	}

	return nil
}

// LoadManifest loads the manifest from the output directory. A missing
// manifest is not an error (first run).
func LoadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	return &m, nil
}

// SaveManifest writes the manifest to the output directory.
func (m *Manifest) SaveManifest(dir string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return WriteFileAtomic(dir, ManifestFile, data)
}

// WriteFileAtomic writes a file via a temp file and rename so a crashed run
// never leaves a half-written calendar at a published name.
func WriteFileAtomic(dir, name string, data []byte) error {
	path := filepath.Join(dir, name)
	tmpPath := path + TmpSuffix

	if err := os.WriteFile(tmpPath, data, FilePermissions); err != nil {
		return fmt.Errorf("%s %s: %w", ErrFailedToSave, name, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%s %s: %w", ErrFailedToSave, name, err)
	}

	return nil
}
