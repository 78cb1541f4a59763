package cli

import (
	"sort"
	"strings"
	"time"

	"github.com/pfrederiksen/band-recaps/internal/orgscores"
)

// SortOrder represents the available sorting options for announcements
type SortOrder string

const (
	SortByDate        SortOrder = "date"
	SortByCompetition SortOrder = "competition"
	SortByDivision    SortOrder = "division"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"1/2/2006",
}

// parseDate parses an API competition date, returning the zero time when no
// layout matches.
func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// sortResults sorts round results based on the specified sort order
func sortResults(results []orgscores.RoundResult, order SortOrder) {
	switch order {
	case SortByDate:
		sort.SliceStable(results, func(i, j int) bool {
			return compareByDate(results[i], results[j])
		})
	case SortByCompetition:
		sort.SliceStable(results, func(i, j int) bool {
			a, b := strings.ToLower(results[i].CompetitionName), strings.ToLower(results[j].CompetitionName)
			if a != b {
				return a < b
			}
			// If competitions are equal, sort by date
			return compareByDate(results[i], results[j])
		})
	case SortByDivision:
		sort.SliceStable(results, func(i, j int) bool {
			a, b := strings.ToLower(results[i].Division), strings.ToLower(results[j].Division)
			if a != b {
				return a < b
			}
			return compareByDate(results[i], results[j])
		})
	}
}

// compareByDate returns true if round i should come before round j
func compareByDate(i, j orgscores.RoundResult) bool {
	dateI := parseDate(i.CompetitionDate)
	dateJ := parseDate(j.CompetitionDate)

	// If both dates are valid, compare them
	if !dateI.IsZero() && !dateJ.IsZero() && !dateI.Equal(dateJ) {
		return dateI.Before(dateJ)
	}

	// If only one date is valid, put the valid one first
	if !dateI.IsZero() && dateJ.IsZero() {
		return true
	}
	if dateI.IsZero() && !dateJ.IsZero() {
		return false
	}

	// Same or unknown dates sort by division
	return strings.ToLower(i.Division) < strings.ToLower(j.Division)
}
