package app

import (
	"sort"
	"strings"
	"time"
)

// SessionDays returns the actual in-session days for a session: weekdays
// inside [start,end] that are neither federal holidays nor inside a recess
// period. Sessions without dates (biennial off-years) yield no days.
func SessionDays(s Session, holidays map[string]string) []time.Time {
	if s.StartDate == "" || s.EndDate == "" {
		return nil
	}

	start, err := parseDate(s.StartDate)
	if err != nil {
		return nil
	}
	end, err := parseDate(s.EndDate)
	if err != nil {
		return nil
	}

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !isWeekday(d) {
			continue
		}
		if _, ok := holidays[formatDateFromTime(d)]; ok {
			continue
		}
		if inRecess(d, s.Recesses) {
			continue
		}
		days = append(days, d)
	}

	return days
}

// GroupConsecutive collapses sorted session days into runs of consecutive
// calendar days.
func GroupConsecutive(s Session, days []time.Time) []Block {
	if len(days) == 0 {
		return nil
	}

	var blocks []Block
	blockStart := days[0]
	blockEnd := days[0]

	for _, d := range days[1:] {
		if d.Equal(blockEnd.AddDate(0, 0, 1)) {
			blockEnd = d
			continue
		}
		blocks = append(blocks, newBlock(s, blockStart, blockEnd, len(blocks)))
		blockStart = d
		blockEnd = d
	}
	blocks = append(blocks, newBlock(s, blockStart, blockEnd, len(blocks)))

	return blocks
}

// SessionBlocks expands a session into its grouped in-session blocks.
func SessionBlocks(s Session, holidays map[string]string) []Block {
	return GroupConsecutive(s, SessionDays(s, holidays))
}

func newBlock(s Session, start, end time.Time, index int) Block {
	return Block{
		SessionID: s.ID,
		Name:      s.Name,
		Start:     formatDateFromTime(start),
		End:       formatDateFromTime(end),
		Index:     index,
	}
}

func isWeekday(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// inRecess reports whether the date falls within any recess period
// (inclusive bounds).
func inRecess(d time.Time, recesses []Recess) bool {
	for _, r := range recesses {
		start, err := parseDate(r.Start)
		if err != nil {
			continue
		}
		end, err := parseDate(r.End)
		if err != nil {
			continue
		}
		if !d.Before(start) && !d.After(end) {
			return true
		}
	}
	return false
}

// Abbrev returns the postal abbreviation of the state whose name occurs in
// the jurisdiction name, or the full name when no state matches (federal
// chambers). Longer state names win so "West Virginia Legislature" is not
// shadowed by "Virginia".
func Abbrev(name string) string {
	best := ""
	abbrev := name
	for state, ab := range StateAbbrev {
		if strings.Contains(name, state) && len(state) > len(best) {
			best = state
			abbrev = ab
		}
	}
	return abbrev
}

// SortBlocksByDate sorts blocks by start date in ascending order.
func SortBlocksByDate(blocks []Block) {
	sort.Slice(blocks, func(i, j int) bool {
		return blocks[i].Start < blocks[j].Start
	})
}
