package understat

import (
	"fmt"
	"time"
)

// CurrentSeason returns the start year of the current European season.
// Leagues run August to May, so before August the season started last year.
func CurrentSeason() int {
	now := time.Now().UTC()
	if now.Month() >= time.August {
		return now.Year()
	}
	return now.Year() - 1
}

// SeasonString formats a season start year as "2025/2026".
func SeasonString(startYear int) string {
	return fmt.Sprintf("%d/%d", startYear, startYear+1)
}
