package recap

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseScoreRow returns [school, city/state, values...] for one band row.
// Judge cells holding a nested score and rank contribute both; any other
// non-empty cell contributes its text. Rows with fewer than two top-level
// cells are not band rows and yield nil.
//
// Some rows on the site omit the city/state cell, which leaves a number in
// its place. Those rows are patched using resolver.
func ParseScoreRow(row *goquery.Selection, resolver CityStateResolver) ([]string, error) {
	cells := row.ChildrenFiltered("td")
	if cells.Length() < 2 {
		return nil, nil
	}

	values := []string{cellText(cells.Eq(0)), cellText(cells.Eq(1))}

	cells.Slice(2, goquery.ToEnd).Each(func(_ int, cell *goquery.Selection) {
		score := cell.Find("td.score").First()
		rank := cell.Find("td.rank").First()

		if score.Length() > 0 && rank.Length() > 0 {
			value := strings.TrimSpace(score.AttrOr("data-translate-number", ""))
			if value == "" {
				value = cellText(score)
			}
			values = append(values, value, cellText(rank))
			return
		}

		if text := cellText(cell); text != "" {
			values = append(values, text)
		}
	})

	if isNumeric(values[1]) {
		return fixMissingCityState(values, resolver)
	}
	return values, nil
}

// fixMissingCityState inserts the looked-up city/state after the school, keeps
// the first two characters of the value that was read as city/state and the
// last character of the one after it.
func fixMissingCityState(values []string, resolver CityStateResolver) ([]string, error) {
	if resolver == nil {
		return nil, &LookupError{School: values[0]}
	}
	cityState, err := resolver.Resolve(values[0])
	if err != nil {
		return nil, err
	}

	fixed := make([]string, 0, len(values)+1)
	fixed = append(fixed, values[0], cityState)
	fixed = append(fixed, values[1:]...)

	if len(fixed) > 2 {
		fixed[2] = firstRunes(fixed[2], 2)
	}
	if len(fixed) > 3 {
		fixed[3] = lastRune(fixed[3])
	}
	return fixed, nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
