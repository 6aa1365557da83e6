package app

// Session represents one jurisdiction's legislative session for a year.
// Empty start/end dates mean the legislature does not meet that year
// (biennial states).
type Session struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	StartDate   string   `yaml:"start_date"`
	EndDate     string   `yaml:"end_date"`
	Description string   `yaml:"description"`
	Federal     bool     `yaml:"federal"`
	Recesses    []Recess `yaml:"recesses"`
}

// Recess represents a period during which the legislature is not in session.
type Recess struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
	Name  string `yaml:"name"`
}

// Block represents a run of consecutive session days, rendered as a single
// multi-day all-day event.
type Block struct {
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Index     int    `json:"index"`
}

// Days returns the number of calendar days covered by the block.
func (b Block) Days() int {
	start, err1 := parseDate(b.Start)
	end, err2 := parseDate(b.End)
	if err1 != nil || err2 != nil {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}
