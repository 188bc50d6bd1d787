package display

import (
	"fmt"
	"time"

	"folio/internal/domain/models"
)

// VersionDisplay is the render-ready shape of one history entry
type VersionDisplay struct {
	VersionID string `json:"version_id"`
	Version   int    `json:"version"`
	Label     string `json:"label"`    // "v3"
	Day       string `json:"day"`      // "Today", "Monday", "May 1", ...
	Relative  string `json:"relative"` // "5 minutes ago"
	Time      string `json:"time"`     // "9:00 AM"
}

// ForVersion formats one version's metadata against the given clock
func ForVersion(v models.DocumentVersion, now time.Time) VersionDisplay {
	return VersionDisplay{
		VersionID: v.ID,
		Version:   v.Version,
		Label:     fmt.Sprintf("v%d", v.Version),
		Day:       DayLabel(v.CreatedAt, now),
		Relative:  Relative(v.CreatedAt, now),
		Time:      Clock(v.CreatedAt),
	}
}

// ForVersions formats a whole history list, preserving order
func ForVersions(versions []models.DocumentVersion, now time.Time) []VersionDisplay {
	out := make([]VersionDisplay, len(versions))
	for i, v := range versions {
		out[i] = ForVersion(v, now)
	}
	return out
}
