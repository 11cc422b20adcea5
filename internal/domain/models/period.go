package models

import "time"

// MonthRange returns the inclusive bounds of the calendar month containing t,
// in t's location. Summaries and reports always cover the current month when
// the utterance does not say otherwise.
func MonthRange(t time.Time) (from, to time.Time) {
	year, month, _ := t.Date()
	from = time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
	to = from.AddDate(0, 1, 0).Add(-time.Second)
	return from, to
}
