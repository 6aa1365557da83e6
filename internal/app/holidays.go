package app

import (
	"time"
)

// FederalHolidays returns the federal holidays observed by legislatures for
// the given year, keyed by YYYY-MM-DD. The set matches the dates legislative
// session data is published against: fixed-date holidays shift to the
// nearest weekday when they fall on a weekend, and the Friday after
// Thanksgiving is included.
func FederalHolidays(year int) map[string]string {
	holidays := make(map[string]string)

	// Fixed holidays, observed on the nearest weekday
	holidays[formatDateFromTime(observed(year, time.January, 1))] = "New Year's Day"
	holidays[formatDateFromTime(observed(year, time.July, 4))] = "Independence Day"
	holidays[formatDateFromTime(observed(year, time.November, 11))] = "Veterans Day"
	holidays[formatDateFromTime(observed(year, time.December, 25))] = "Christmas Day"

	// Floating holidays
	holidays[formatDateFromTime(nthWeekday(year, time.January, time.Monday, 3))] = "Martin Luther King Jr. Day"
	holidays[formatDateFromTime(nthWeekday(year, time.February, time.Monday, 3))] = "Presidents' Day"
	holidays[formatDateFromTime(lastWeekday(year, time.May, time.Monday))] = "Memorial Day"
	holidays[formatDateFromTime(nthWeekday(year, time.September, time.Monday, 1))] = "Labor Day"
	holidays[formatDateFromTime(nthWeekday(year, time.October, time.Monday, 2))] = "Columbus Day"

	thanksgiving := nthWeekday(year, time.November, time.Thursday, 4)
	holidays[formatDateFromTime(thanksgiving)] = "Thanksgiving"
	holidays[formatDateFromTime(thanksgiving.AddDate(0, 0, 1))] = "Day after Thanksgiving"

	return holidays
}

// observed returns the weekday on which a fixed-date holiday is observed:
// Saturday holidays move to Friday, Sunday holidays to Monday.
func observed(year int, month time.Month, day int) time.Time {
	// Use noon to avoid timezone issues when formatting to YYYY-MM-DD
	d := time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, -1)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	}
	return d
}

// nthWeekday returns the nth occurrence of a weekday in the given month.
func nthWeekday(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	d := time.Date(year, month, 1, 12, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, offset+(n-1)*7)
}

// lastWeekday returns the last occurrence of a weekday in the given month.
func lastWeekday(year int, month time.Month, weekday time.Weekday) time.Time {
	// Last day of month: day 0 of the next month
	d := time.Date(year, month+1, 0, 12, 0, 0, 0, time.UTC)
	offset := (int(d.Weekday()) - int(weekday) + 7) % 7
	return d.AddDate(0, 0, -offset)
}

// formatDateFromTime formats a time.Time as YYYY-MM-DD.
func formatDateFromTime(t time.Time) string {
	return t.Format(DateFormat)
}
