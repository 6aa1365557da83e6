package app

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// WriteICS writes an iCalendar (ICS) subscription feed for the given session
// blocks. Events are all-day and transparent so subscribed calendars do not
// show the subscriber as busy. UIDs are deterministic so regeneration
// updates events in place in subscribed clients.
func WriteICS(w io.Writer, title string, year int, timezone string, blocks []Block) error {
	// ICS header
	fmt.Fprintln(w, "BEGIN:VCALENDAR")
	fmt.Fprintln(w, "VERSION:2.0")
	fmt.Fprintf(w, "PRODID:%s\n", fmt.Sprintf(ICSProductIDFormat, year))
	fmt.Fprintln(w, "CALSCALE:GREGORIAN")
	fmt.Fprintln(w, "METHOD:PUBLISH")
	fmt.Fprintf(w, "X-WR-CALNAME:%s\n", title)
	fmt.Fprintf(w, "X-WR-TIMEZONE:%s\n", timezone)
	fmt.Fprintf(w, "X-WR-CALDESC:%s\n", ICSCalendarDesc)

	dtstamp := time.Now().UTC().Format("20060102T150405Z")

	for _, block := range blocks {
		start, err := parseDate(block.Start)
		if err != nil {
			continue
		}
		end, err := parseDate(block.End)
		if err != nil {
			continue
		}

		// UID must be stable across regenerations for proper calendar updates
		uid := fmt.Sprintf("%s-%d-block-%d@%s", block.SessionID, year, block.Index, ICSUIDDomain)

		abbrev := Abbrev(block.Name)
		summary := fmt.Sprintf("%s - In Session", abbrev)
		if days := block.Days(); days > 1 {
			summary = fmt.Sprintf("%s - In Session (%d days)", abbrev, days)
		}

		fmt.Fprintln(w, "BEGIN:VEVENT")
		fmt.Fprintf(w, "UID:%s\n", uid)
		fmt.Fprintf(w, "DTSTAMP:%s\n", dtstamp)
		fmt.Fprintf(w, "DTSTART;VALUE=DATE:%s\n", start.Format("20060102"))
		// ICS end dates are exclusive, so add one day
		fmt.Fprintf(w, "DTEND;VALUE=DATE:%s\n", end.AddDate(0, 0, 1).Format("20060102"))
		fmt.Fprintf(w, "SUMMARY:%s\n", summary)
		fmt.Fprintln(w, "DESCRIPTION:Legislature in session")
		fmt.Fprintln(w, "TRANSP:TRANSPARENT")
		fmt.Fprintln(w, "END:VEVENT")
	}

	fmt.Fprintln(w, "END:VCALENDAR")
	return nil
}

// WriteCSV writes the session blocks as CSV rows.
func WriteCSV(w io.Writer, blocks []Block) error {
	// CSV header
	fmt.Fprintln(w, "session_id,name,start,end,days")

	for _, block := range blocks {
		fmt.Fprintf(w, "%s,%s,%s,%s,%d\n",
			block.SessionID, block.Name, block.Start, block.End, block.Days())
	}
	return nil
}

// WriteJSON writes the session blocks as a JSON document.
func WriteJSON(w io.Writer, title string, year int, blocks []Block) error {
	data := map[string]interface{}{
		"title":  title,
		"year":   year,
		"blocks": blocks,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON export: %w", err)
	}
	return nil
}
