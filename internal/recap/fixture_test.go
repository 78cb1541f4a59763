package recap

import (
	"fmt"
	"strings"
)

// Helpers that build recap pages shaped like the CompetitionSuite layout.

var (
	fixtureCaptions    = []string{"Music", "Visual", "Percussion", "Color Guard", "Sub Total", "Penalties"}
	fixtureSubCaptions = []string{
		"Music Ensemble", "Music Effect",
		"Visual Ensemble", "Visual Effect",
		"Percussion Performance", "Color Guard Performance",
		"Timing Penalty",
	}
	fixtureJudges     = []string{"J. Smith", "A. Jones", "R. Lee", "M. Brown", "K. Davis", "T. Clark"}
	fixtureRawHeaders = []string{
		"Mus", "Tec", "Sub",
		"Ovr", "Gen", "Sub", "Tot",
		"Vis", "Tec", "Sub",
		"Ovr", "Gen", "Sub", "Tot",
		"Mus", "Vis", "Sub", "Tot",
		"Eq", "Mov", "Sub", "Tot",
		"Sub", "Pen", "Tot",
	}
)

func fixtureHeader() *Header {
	return &Header{
		Division:     "4A Open - Finals",
		Captions:     append([]string(nil), fixtureCaptions...),
		SubCaptions:  append([]string(nil), fixtureSubCaptions...),
		Judges:       append([]string(nil), fixtureJudges...),
		TableHeaders: append([]string(nil), fixtureRawHeaders...),
	}
}

func scoreCell(score, rank string) string {
	return fmt.Sprintf(`<td class="subcaption"><table><tr>`+
		`<td class="content score" data-translate-number="%s">%s</td>`+
		`<td class="content rank">%s</td>`+
		`</tr></table></td>`, score, score, rank)
}

func textCell(text string) string {
	return "<td>" + text + "</td>"
}

func rowOf(cells ...string) string {
	return "<tr>" + strings.Join(cells, "") + "</tr>"
}

func headerRow(texts []string) string {
	cells := []string{"<th></th>", "<th></th>"}
	for _, t := range texts {
		cells = append(cells, "<th>"+t+"</th>")
	}
	return rowOf(cells...)
}

// bandRow builds a complete band row: 22 judge cells plus sub total,
// penalty, penalty total and total cells, 54 values in all.
func bandRow(school, cityState string, rank int) string {
	return bandRowWithJudges(school, cityState, rank, 22)
}

func bandRowWithJudges(school, cityState string, rank, judges int) string {
	return bandRowWithPenaltyRanks(school, cityState, rank, judges, "", "")
}

// bandRowWithPenaltyRanks fills the rank halves of the two penalty cells,
// which land in the two SPACER columns.
func bandRowWithPenaltyRanks(school, cityState string, rank, judges int, penRank, penTotalRank string) string {
	cells := []string{textCell(school), textCell(cityState)}
	for i := 0; i < judges; i++ {
		cells = append(cells, scoreCell(fmt.Sprintf("%d.%d", 15+rank, i), fmt.Sprint(rank)))
	}
	cells = append(cells,
		scoreCell(fmt.Sprintf("8%d.5", 9-rank), fmt.Sprint(rank)),
		scoreCell("0", penRank),
		scoreCell("0", penTotalRank),
		scoreCell(fmt.Sprintf("8%d.5", 9-rank), fmt.Sprint(rank)),
	)
	return rowOf(cells...)
}

// recapPage wraps rows in a page whose score table is the second table.
func recapPage(rows ...string) string {
	var b strings.Builder
	b.WriteString(`<html><head><title>Recap</title></head><body>`)
	b.WriteString(`<table class="banner"><tr><td>Utah Marching Band Championships</td></tr></table>`)
	b.WriteString(`<table class="recap">`)
	b.WriteString(rowOf(`<td colspan="60">4A Open - Finals</td>`))
	b.WriteString(rowOf(`<td colspan="60">&nbsp;</td>`))
	b.WriteString(headerRow(fixtureCaptions))
	b.WriteString(headerRow(fixtureSubCaptions))
	b.WriteString(headerRow(fixtureJudges))
	b.WriteString(headerRow(fixtureRawHeaders))
	for _, r := range rows {
		b.WriteString(r)
	}
	b.WriteString(`</table></body></html>`)
	return b.String()
}

func spacerRow() string {
	return rowOf(`<td colspan="60">&nbsp;</td>`)
}
