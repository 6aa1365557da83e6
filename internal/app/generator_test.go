package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func testConfig() *Config {
	return &Config{
		Year:     2026,
		Timezone: DefaultTimezone,
		Sessions: []Session{
			{
				ID: "US_House", Name: "U.S. House of Representatives", Federal: true,
				StartDate: "2026-01-06", EndDate: "2026-12-31",
				Recesses: []Recess{{Start: "2026-07-04", End: "2026-09-07", Name: "Summer Recess"}},
			},
			{
				ID: "US_Senate", Name: "U.S. Senate", Federal: true,
				StartDate: "2026-01-06", EndDate: "2026-12-31",
			},
			{
				ID: "California", Name: "California State Legislature",
				StartDate: "2026-01-05", EndDate: "2026-08-31",
				Recesses: []Recess{{Start: "2026-04-06", End: "2026-04-12", Name: "Spring Recess"}},
			},
			{
				ID: "Wyoming", Name: "Wyoming Legislature",
				StartDate: "2026-02-09", EndDate: "2026-03-06",
			},
			{
				ID: "Montana", Name: "Montana Legislature",
			},
		},
	}
}

func TestGeneratorRun(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(testConfig(), dir, Formats{}, zap.NewNop())

	manifest, err := g.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Per-state calendars exist only for states with a session this year,
	// plus the federal, combined and regional calendars.
	wantFiles := []string{
		"federal_legislative_calendar_2026.ics",
		"california_legislative_calendar_2026.ics",
		"wyoming_legislative_calendar_2026.ics",
		"all_legislative_sessions_2026.ics",
		"northeast_states_2026.ics",
		"southeast_states_2026.ics",
		"midwest_states_2026.ics",
		"west_states_2026.ics",
		ManifestFile,
	}
	for _, name := range wantFiles {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("Expected output file %s: %v", name, err)
		}
	}

	if _, err := os.Stat(filepath.Join(dir, "montana_legislative_calendar_2026.ics")); !os.IsNotExist(err) {
		t.Error("Biennial off-year state should not get a calendar file")
	}

	if len(manifest.Files) != len(wantFiles)-1 {
		t.Errorf("Expected %d manifest entries, got %d", len(wantFiles)-1, len(manifest.Files))
	}

	// The combined calendar holds both federal chambers and both states
	data, err := os.ReadFile(filepath.Join(dir, "all_legislative_sessions_2026.ics"))
	if err != nil {
		t.Fatalf("Failed to read combined calendar: %v", err)
	}
	body := string(data)
	for _, uidPrefix := range []string{"US_House-2026", "US_Senate-2026", "California-2026", "Wyoming-2026"} {
		if !strings.Contains(body, "UID:"+uidPrefix) {
			t.Errorf("Combined calendar missing events for %s", uidPrefix)
		}
	}

	// Events are ordered by date, so California's Jan 5 start comes before
	// the federal chambers' Jan 6 convening
	caStart := strings.Index(body, "DTSTART;VALUE=DATE:20260105")
	houseStart := strings.Index(body, "DTSTART;VALUE=DATE:20260106")
	if caStart == -1 || houseStart == -1 {
		t.Fatal("Combined calendar missing expected session starts")
	}
	if caStart > houseStart {
		t.Error("Combined calendar events should be sorted by start date")
	}

	// The west regional calendar includes California but not Wyoming's
	// absent neighbors from other regions
	data, err = os.ReadFile(filepath.Join(dir, "west_states_2026.ics"))
	if err != nil {
		t.Fatalf("Failed to read regional calendar: %v", err)
	}
	if !strings.Contains(string(data), "UID:California-2026") {
		t.Error("West regional calendar should include California")
	}
	if !strings.Contains(string(data), "UID:Wyoming-2026") {
		t.Error("West regional calendar should include Wyoming")
	}
	if strings.Contains(string(data), "US_House") {
		t.Error("Regional calendars should not include federal chambers")
	}
}

func TestGeneratorStableFilenames(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig()

	first, err := NewGenerator(cfg, dir, Formats{}, zap.NewNop()).Run()
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}

	// Regenerating with changed session content keeps every filename
	cfg.Sessions[3].EndDate = "2026-03-13"
	second, err := NewGenerator(cfg, dir, Formats{}, zap.NewNop()).Run()
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	firstNames := strings.Join(first.Names(), "\n")
	secondNames := strings.Join(second.Names(), "\n")
	if firstNames != secondNames {
		t.Errorf("Filenames changed across regenerations:\nfirst:\n%s\nsecond:\n%s", firstNames, secondNames)
	}
}

func TestGeneratorRefusesVanishingFilename(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig()

	if _, err := NewGenerator(cfg, dir, Formats{}, zap.NewNop()).Run(); err != nil {
		t.Fatalf("First run failed: %v", err)
	}

	// Dropping a published state would remove its calendar file
	cfg.Sessions = cfg.Sessions[:3] // cuts Wyoming
	_, err := NewGenerator(cfg, dir, Formats{}, zap.NewNop()).Run()
	if err == nil {
		t.Fatal("Expected error when a published calendar would vanish")
	}
	if !strings.Contains(err.Error(), "wyoming_legislative_calendar_2026.ics") {
		t.Errorf("Error should name the vanished calendar, got: %v", err)
	}

	// The previously published file must be untouched
	if _, statErr := os.Stat(filepath.Join(dir, "wyoming_legislative_calendar_2026.ics")); statErr != nil {
		t.Errorf("Aborted run must not remove published files: %v", statErr)
	}
}

func TestGeneratorOptionalFormats(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(testConfig(), dir, Formats{CSV: true, JSON: true}, zap.NewNop())

	if _, err := g.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, name := range []string{
		"california_legislative_calendar_2026.csv",
		"california_legislative_calendar_2026.json",
	} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("Expected companion export %s: %v", name, err)
		}
	}
}
