package display

import (
	"testing"
	"time"
)

// The history panel buckets are pinned against a fixed clock:
// 2024-06-15 was a Saturday.
var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func TestDayLabel(t *testing.T) {
	tests := []struct {
		name string
		ts   time.Time
		want string
	}{
		{
			name: "same day",
			ts:   time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC),
			want: "Today",
		},
		{
			name: "previous calendar day",
			ts:   time.Date(2024, 6, 14, 9, 0, 0, 0, time.UTC),
			want: "Yesterday",
		},
		{
			name: "five days prior uses weekday name",
			ts:   time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC),
			want: "Monday",
		},
		{
			name: "six days prior still weekday",
			ts:   time.Date(2024, 6, 9, 23, 0, 0, 0, time.UTC),
			want: "Sunday",
		},
		{
			name: "seven days prior leaves the weekday window",
			ts:   time.Date(2024, 6, 8, 9, 0, 0, 0, time.UTC),
			want: "June 8",
		},
		{
			name: "within sixty days uses month and day",
			ts:   time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
			want: "May 1",
		},
		{
			name: "older than sixty days uses month and year",
			ts:   time.Date(2023, 1, 1, 9, 0, 0, 0, time.UTC),
			want: "January 2023",
		},
		{
			name: "late evening same day",
			ts:   time.Date(2024, 6, 15, 0, 1, 0, 0, time.UTC),
			want: "Today",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayLabel(tt.ts, now); got != tt.want {
				t.Errorf("DayLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRelative(t *testing.T) {
	tests := []struct {
		name string
		ts   time.Time
		want string
	}{
		{"seconds ago", now.Add(-30 * time.Second), "just now"},
		{"one minute", now.Add(-90 * time.Second), "1 minute ago"},
		{"minutes", now.Add(-25 * time.Minute), "25 minutes ago"},
		{"one hour", now.Add(-90 * time.Minute), "1 hour ago"},
		{"hours", now.Add(-5 * time.Hour), "5 hours ago"},
		{"one day", now.Add(-26 * time.Hour), "1 day ago"},
		{"days", now.Add(-5 * 24 * time.Hour), "5 days ago"},
		{"one month", now.Add(-35 * 24 * time.Hour), "1 month ago"},
		{"months", now.Add(-100 * 24 * time.Hour), "3 months ago"},
		{"one year", now.Add(-400 * 24 * time.Hour), "1 year ago"},
		{"years", now.Add(-800 * 24 * time.Hour), "2 years ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Relative(tt.ts, now); got != tt.want {
				t.Errorf("Relative() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClock(t *testing.T) {
	ts := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	if got := Clock(ts); got != "9:00 AM" {
		t.Errorf("Clock() = %q, want %q", got, "9:00 AM")
	}

	ts = time.Date(2024, 6, 15, 15, 4, 0, 0, time.UTC)
	if got := Clock(ts); got != "3:04 PM" {
		t.Errorf("Clock() = %q, want %q", got, "3:04 PM")
	}
}
