// Package display formats version metadata for presentation. Everything here
// is a pure function of (timestamp, now) so the history panel renders the
// same labels the tests pin down.
package display

import (
	"fmt"
	"time"
)

// DayLabel buckets a version timestamp into the history panel's day label:
// "Today"/"Yesterday" for the two most recent calendar days, the weekday
// name within the last week, month and day within the last 60 days, month
// and year beyond that.
func DayLabel(ts, now time.Time) string {
	days := calendarDaysBetween(ts, now)
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return ts.Format("Monday")
	case days < 60:
		return ts.Format("January 2")
	default:
		return ts.Format("January 2006")
	}
}

// Relative renders a coarse relative-time string for a version timestamp
func Relative(ts, now time.Time) string {
	d := now.Sub(ts)
	switch {
	case d < time.Minute:
		return "just now"
	case d < 2*time.Minute:
		return "1 minute ago"
	case d < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(d.Minutes()))
	case d < 2*time.Hour:
		return "1 hour ago"
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	default:
	}

	days := calendarDaysBetween(ts, now)
	switch {
	case days == 1:
		return "1 day ago"
	case days < 30:
		return fmt.Sprintf("%d days ago", days)
	case days < 60:
		return "1 month ago"
	case days < 365:
		return fmt.Sprintf("%d months ago", days/30)
	case days < 730:
		return "1 year ago"
	default:
		return fmt.Sprintf("%d years ago", days/365)
	}
}

// Clock renders the absolute time of day, e.g. "9:00 AM"
func Clock(ts time.Time) string {
	return ts.Format("3:04 PM")
}

// calendarDaysBetween counts midnight boundaries between ts and now in
// now's location
func calendarDaysBetween(ts, now time.Time) int {
	loc := now.Location()
	tsDay := time.Date(ts.In(loc).Year(), ts.In(loc).Month(), ts.In(loc).Day(), 0, 0, 0, 0, loc)
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	return int(nowDay.Sub(tsDay) / (24 * time.Hour))
}
