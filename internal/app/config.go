package app

// Constants
const (
	DateFormat      = "2006-01-02"
	ManifestFile    = "manifest.json"
	TmpSuffix       = ".tmp"
	FilePermissions = 0644

	// Error messages
	ErrInvalidDateFormat = "invalid date format"
	ErrFailedToSave      = "failed to save calendar"
	ErrUnknownSession    = "unknown session id"

	// ICS constants
	ICSProductIDFormat = "-//Beekeeper Group//Legislative Calendar %d//EN"
	ICSUIDDomain       = "legislative-calendar.beekeepergroup.com"
	ICSCalendarDesc    = "Legislative session periods (excludes weekends, holidays, recesses)"
	DefaultTimezone    = "America/New_York"
)

// StateAbbrev maps state names to their postal abbreviations.
var StateAbbrev = map[string]string{
	"Alabama": "AL", "Alaska": "AK", "Arizona": "AZ", "Arkansas": "AR",
	"California": "CA", "Colorado": "CO", "Connecticut": "CT", "Delaware": "DE",
	"Florida": "FL", "Georgia": "GA", "Hawaii": "HI", "Idaho": "ID",
	"Illinois": "IL", "Indiana": "IN", "Iowa": "IA", "Kansas": "KS",
	"Kentucky": "KY", "Louisiana": "LA", "Maine": "ME", "Maryland": "MD",
	"Massachusetts": "MA", "Michigan": "MI", "Minnesota": "MN", "Mississippi": "MS",
	"Missouri": "MO", "Montana": "MT", "Nebraska": "NE", "Nevada": "NV",
	"New Hampshire": "NH", "New Jersey": "NJ", "New Mexico": "NM", "New York": "NY",
	"North Carolina": "NC", "North Dakota": "ND", "Ohio": "OH", "Oklahoma": "OK",
	"Oregon": "OR", "Pennsylvania": "PA", "Rhode Island": "RI", "South Carolina": "SC",
	"South Dakota": "SD", "Tennessee": "TN", "Texas": "TX", "Utah": "UT",
	"Vermont": "VT", "Virginia": "VA", "Washington": "WA", "West Virginia": "WV",
	"Wisconsin": "WI", "Wyoming": "WY",
}

// Regions maps region keys to the session IDs included in each regional
// calendar. Biennial states with no session in a given year simply
// contribute no events.
var Regions = map[string][]string{
	"northeast": {
		"Connecticut", "Maine", "Massachusetts", "New_Hampshire",
		"New_Jersey", "New_York", "Pennsylvania", "Rhode_Island", "Vermont",
	},
	"southeast": {
		"Alabama", "Arkansas", "Florida", "Georgia", "Kentucky",
		"Louisiana", "Mississippi", "North_Carolina", "South_Carolina",
		"Tennessee", "Virginia", "West_Virginia",
	},
	"midwest": {
		"Illinois", "Indiana", "Iowa", "Kansas", "Michigan",
		"Minnesota", "Missouri", "Nebraska", "Ohio", "South_Dakota", "Wisconsin",
	},
	"west": {
		"Alaska", "Arizona", "California", "Colorado", "Hawaii",
		"Idaho", "New_Mexico", "Oklahoma", "Oregon", "Utah", "Washington", "Wyoming",
	},
}

// RegionTitles maps region keys to their calendar display names.
var RegionTitles = map[string]string{
	"northeast": "Northeast States",
	"southeast": "Southeast States",
	"midwest":   "Midwest States",
	"west":      "West States",
}
