package recap

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

// firstRow parses cells as the only row of a table and returns that row.
func firstRow(t *testing.T, cells ...string) *goquery.Selection {
	t.Helper()

	html := "<table>" + rowOf(cells...) + "</table>"
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing HTML: %v", err)
	}
	return ownRows(doc.Find("table").First()).First()
}

func TestParseScoreRow(t *testing.T) {
	tests := []struct {
		name  string
		cells []string
		want  []string
	}{
		{
			name:  "school, city and one score",
			cells: []string{textCell("Lehi"), textCell("UT"), scoreCell("85.2", "1")},
			want:  []string{"Lehi", "UT", "85.2", "1"},
		},
		{
			name: "precise score preferred over display text",
			cells: []string{
				textCell("Lone Peak"), textCell("Highland, UT"),
				`<td><table><tr><td class="content score" data-translate-number="17.125">17.13</td><td class="content rank">2</td></tr></table></td>`,
			},
			want: []string{"Lone Peak", "Highland, UT", "17.125", "2"},
		},
		{
			name: "display text when no precise score",
			cells: []string{
				textCell("Orem"), textCell("Orem, UT"),
				`<td><table><tr><td class="content score"> 16.4 </td><td class="content rank">3</td></tr></table></td>`,
			},
			want: []string{"Orem", "Orem, UT", "16.4", "3"},
		},
		{
			name:  "bare text cells and empty cells",
			cells: []string{textCell("Davis"), textCell("Kaysville, UT"), textCell("0.5"), textCell(" "), textCell("88.1")},
			want:  []string{"Davis", "Kaysville, UT", "0.5", "88.1"},
		},
		{
			name:  "empty rank still emitted",
			cells: []string{textCell("Roy"), textCell("Roy, UT"), scoreCell("0", "")},
			want:  []string{"Roy", "Roy, UT", "0", ""},
		},
		{
			name:  "two cells only",
			cells: []string{textCell("Tooele"), textCell("Tooele, UT")},
			want:  []string{"Tooele", "Tooele, UT"},
		},
	}

	resolver := NewStaticResolver(DefaultSchools)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseScoreRow(firstRow(t, tt.cells...), resolver)
			if err != nil {
				t.Fatalf("ParseScoreRow failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseScoreRow() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseScoreRow_SkipsNonDataRows(t *testing.T) {
	rows := map[string][]string{
		"spacer": {`<td colspan="60">&nbsp;</td>`},
		"empty":  {},
	}

	for name, cells := range rows {
		t.Run(name, func(t *testing.T) {
			got, err := ParseScoreRow(firstRow(t, cells...), nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != nil {
				t.Errorf("expected nil for non-data row, got %q", got)
			}
		})
	}
}

func TestParseScoreRow_MissingCityState(t *testing.T) {
	row := firstRow(t, textCell("American Fork"), textCell("12"), scoreCell("85.25", "3"))

	got, err := ParseScoreRow(row, NewStaticResolver(DefaultSchools))
	if err != nil {
		t.Fatalf("ParseScoreRow failed: %v", err)
	}

	want := []string{"American Fork", "American Fork, UT", "12", "5", "3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseScoreRow() = %q, want %q", got, want)
	}
}

func TestParseScoreRow_UnknownSchool(t *testing.T) {
	row := firstRow(t, textCell("Springfield"), textCell("7"), scoreCell("70.0", "9"))

	for name, resolver := range map[string]CityStateResolver{
		"static": NewStaticResolver(DefaultSchools),
		"nil":    nil,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseScoreRow(row, resolver)
			var lookupErr *LookupError
			if !errors.As(err, &lookupErr) {
				t.Fatalf("expected *LookupError, got %v", err)
			}
			if lookupErr.School != "Springfield" {
				t.Errorf("School = %q, want Springfield", lookupErr.School)
			}
		})
	}
}

func TestStaticResolver(t *testing.T) {
	r := NewStaticResolver(map[string]string{"Lone Peak": "Highland, UT"})

	if got, err := r.Resolve("  lone   PEAK "); err != nil || got != "Highland, UT" {
		t.Errorf("Resolve() = %q, %v; want Highland, UT", got, err)
	}

	extended := r.With(map[string]string{"lone peak": "Alpine, UT", "Juab": "Nephi, UT"})
	if got, _ := extended.Resolve("Lone Peak"); got != "Alpine, UT" {
		t.Errorf("extended Resolve() = %q, want Alpine, UT", got)
	}
	if extended.Len() != 2 {
		t.Errorf("extended Len() = %d, want 2", extended.Len())
	}
	if got, _ := r.Resolve("Lone Peak"); got != "Highland, UT" {
		t.Error("With should not modify the original resolver")
	}
	if _, err := r.Resolve("Juab"); err == nil {
		t.Error("expected error for unknown school")
	}
}
