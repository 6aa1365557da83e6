package app

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// regionOrder fixes the generation order of the regional calendars.
var regionOrder = []string{"northeast", "southeast", "midwest", "west"}

// Formats selects which renderings are written per calendar. ICS is always
// written; CSV and JSON are optional companions.
type Formats struct {
	CSV  bool
	JSON bool
}

// Generator produces the full calendar file set for one year of session
// data: one calendar per state, a combined federal calendar, four regional
// calendars and an everything calendar.
type Generator struct {
	cfg     *Config
	outDir  string
	formats Formats
	log     *zap.Logger
}

// NewGenerator creates a Generator writing into outDir.
func NewGenerator(cfg *Config, outDir string, formats Formats, log *zap.Logger) *Generator {
	return &Generator{cfg: cfg, outDir: outDir, formats: formats, log: log}
}

// calendarSpec names one output calendar and the sessions it includes.
type calendarSpec struct {
	basename   string
	title      string
	sessionIDs []string
}

// Run generates every calendar, enforces filename stability against the
// previous manifest and writes the files plus the new manifest atomically.
func (g *Generator) Run() (*Manifest, error) {
	if err := os.MkdirAll(g.outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	prev, err := LoadManifest(g.outDir)
	if err != nil {
		return nil, err
	}

	holidays := FederalHolidays(g.cfg.Year)

	// Expand each session once; every calendar reuses the blocks.
	blocksByID := make(map[string][]Block)
	daysByID := make(map[string]int)
	for _, s := range g.cfg.Sessions {
		blocks := SessionBlocks(s, holidays)
		blocksByID[s.ID] = blocks
		days := 0
		for _, b := range blocks {
			days += b.Days()
		}
		daysByID[s.ID] = days
	}

	manifest := NewManifest(g.cfg.Year)
	outputs := make(map[string][]byte)

	for _, spec := range g.calendarSpecs() {
		blocks, days := g.collect(spec.sessionIDs, blocksByID, daysByID)

		rendered, err := g.render(spec, blocks)
		if err != nil {
			return nil, err
		}

		for name, data := range rendered {
			outputs[name] = data
			manifest.Add(name, data, len(blocks), days)
		}

		g.log.Info("generated calendar",
			zap.String("file", spec.basename+".ics"),
			zap.Int("blocks", len(blocks)),
			zap.Int("days", days))
	}

	// Refuse to regenerate if a previously published filename would vanish.
	if err := manifest.VerifyStableNames(prev); err != nil {
		return nil, err
	}

	for name, data := range outputs {
		if err := WriteFileAtomic(g.outDir, name, data); err != nil {
			return nil, err
		}
	}

	if err := manifest.SaveManifest(g.outDir); err != nil {
		return nil, err
	}

	g.log.Info("generation complete",
		zap.Int("calendars", len(outputs)),
		zap.String("output_dir", g.outDir))

	return manifest, nil
}

// calendarSpecs enumerates the full output set with stable basenames.
func (g *Generator) calendarSpecs() []calendarSpec {
	year := g.cfg.Year
	specs := []calendarSpec{
		{
			basename:   fmt.Sprintf("federal_legislative_calendar_%d", year),
			title:      fmt.Sprintf("Federal - %d Legislative Session", year),
			sessionIDs: g.cfg.FederalIDs(),
		},
	}

	for _, id := range g.cfg.StateIDs() {
		s, _ := g.cfg.Session(id)
		specs = append(specs, calendarSpec{
			basename:   fmt.Sprintf("%s_legislative_calendar_%d", strings.ToLower(id), year),
			title:      fmt.Sprintf("%s - %d Legislative Session", Abbrev(s.Name), year),
			sessionIDs: []string{id},
		})
	}

	specs = append(specs, calendarSpec{
		basename:   fmt.Sprintf("all_legislative_sessions_%d", year),
		title:      fmt.Sprintf("All Legislative Sessions - %d", year),
		sessionIDs: g.cfg.AllIDs(),
	})

	for _, region := range regionOrder {
		specs = append(specs, calendarSpec{
			basename:   fmt.Sprintf("%s_states_%d", region, year),
			title:      fmt.Sprintf("%s - %d Legislative Sessions", RegionTitles[region], year),
			sessionIDs: Regions[region],
		})
	}

	return specs
}

// collect gathers blocks and total session days for the given session IDs.
// Unknown IDs are skipped with a warning, matching the forgiving behavior
// expected of regional groupings when a state drops out of the config.
func (g *Generator) collect(ids []string, blocksByID map[string][]Block, daysByID map[string]int) ([]Block, int) {
	var blocks []Block
	days := 0
	for _, id := range ids {
		b, ok := blocksByID[id]
		if !ok {
			if _, exists := g.cfg.Session(id); !exists {
				g.log.Warn(ErrUnknownSession, zap.String("session_id", id))
				continue
			}
		}
		blocks = append(blocks, b...)
		days += daysByID[id]
	}
	// Combined calendars interleave sessions, so order by date
	SortBlocksByDate(blocks)
	return blocks, days
}

// render produces every enabled format for one calendar.
func (g *Generator) render(spec calendarSpec, blocks []Block) (map[string][]byte, error) {
	out := make(map[string][]byte)

	var ics bytes.Buffer
	if err := WriteICS(&ics, spec.title, g.cfg.Year, g.cfg.Timezone, blocks); err != nil {
		return nil, err
	}
	out[spec.basename+".ics"] = ics.Bytes()

	if g.formats.CSV {
		var csv bytes.Buffer
		if err := WriteCSV(&csv, blocks); err != nil {
			return nil, err
		}
		out[spec.basename+".csv"] = csv.Bytes()
	}

	if g.formats.JSON {
		var js bytes.Buffer
		if err := WriteJSON(&js, spec.title, g.cfg.Year, blocks); err != nil {
			return nil, err
		}
		out[spec.basename+".json"] = js.Bytes()
	}

	return out, nil
}
