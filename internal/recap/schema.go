package recap

import (
	"fmt"
	"slices"
	"strings"
)

// Block is one run of judge columns in the raw header row. Columns raw
// headers belong to it; when HasTotal is set the last of them is the
// caption total.
type Block struct {
	Caption  int
	Prefix   int
	Columns  int
	HasTotal bool
}

// Schema maps the raw header row of a recap table onto semantic column names.
// The page only encodes caption and sub-caption grouping by position, so the
// blocks must match the published layout exactly.
type Schema struct {
	Version  string
	Blocks   []Block
	Leading  []string
	Trailing []string
}

// DefaultSchema is the layout of CompetitionSuite full recaps with two music,
// two visual, one percussion and one color guard sub-caption.
var DefaultSchema = Schema{
	Version: "2025.1",
	Blocks: []Block{
		{Caption: 0, Prefix: 0, Columns: 3},
		{Caption: 0, Prefix: 1, Columns: 4, HasTotal: true},
		{Caption: 1, Prefix: 2, Columns: 3},
		{Caption: 1, Prefix: 3, Columns: 4, HasTotal: true},
		{Caption: 2, Prefix: 4, Columns: 4, HasTotal: true},
		{Caption: 3, Prefix: 5, Columns: 4, HasTotal: true},
	},
	Leading: []string{"school", "city/state"},
	Trailing: []string{
		"SubTotal", "SubTotal_Rank",
		"Penalties", "SPACER",
		"Penalties_Total", "SPACER",
		"Total", "Rank",
	},
}

// RawColumns is the number of raw header entries the blocks consume.
func (s *Schema) RawColumns() int {
	n := 0
	for _, b := range s.Blocks {
		n += b.Columns
	}
	return n
}

// Width is the number of column names BuildHeaderNames produces.
func (s *Schema) Width() int {
	return len(s.Leading) + 2*s.RawColumns() + len(s.Trailing)
}

// Validate checks that the blocks are well formed and that the header carries
// everything they refer to.
func (s *Schema) Validate(h *Header) error {
	for i, b := range s.Blocks {
		if b.Caption < 0 || b.Prefix < 0 || b.Columns < 0 {
			return &ValidationError{
				Field:  fmt.Sprintf("schema %s block %d", s.Version, i),
				Reason: "caption, prefix and columns must not be negative",
			}
		}
	}

	if h == nil || len(h.SubCaptions) == 0 {
		return &ValidationError{Field: "sub_captions", Reason: "header must have sub-captions before transformation"}
	}

	if got, want := len(h.TableHeaders), s.RawColumns(); got < want {
		return &SchemaMismatchError{Schema: s.Version, Field: "table headers", Row: -1, Expected: want, Actual: got}
	}

	maxCaption, maxPrefix := -1, -1
	for _, b := range s.Blocks {
		maxCaption = max(maxCaption, b.Caption)
		maxPrefix = max(maxPrefix, b.Prefix)
	}
	if len(h.Captions) <= maxCaption {
		return &SchemaMismatchError{Schema: s.Version, Field: "captions", Row: -1, Expected: maxCaption + 1, Actual: len(h.Captions)}
	}
	if len(h.SubCaptions) <= maxPrefix {
		return &SchemaMismatchError{Schema: s.Version, Field: "sub-captions", Row: -1, Expected: maxPrefix + 1, Actual: len(h.SubCaptions)}
	}
	return nil
}

// BuildHeaderNames derives the final column names for h and stores them in
// h.RenamedHeaders. Once set, the stored names are returned unchanged.
func (s *Schema) BuildHeaderNames(h *Header) ([]string, error) {
	if h != nil && len(h.RenamedHeaders) > 0 {
		return slices.Clone(h.RenamedHeaders), nil
	}
	if err := s.Validate(h); err != nil {
		return nil, err
	}

	prefixes := BuildPrefixes(h.SubCaptions)
	names := make([]string, 0, s.Width())
	names = append(names, s.Leading...)

	cursor := 0
	for _, b := range s.Blocks {
		raw := h.TableHeaders[cursor : cursor+b.Columns]
		cursor += b.Columns

		for i, col := range raw {
			if b.HasTotal && i == len(raw)-1 {
				caption := h.Captions[b.Caption]
				names = append(names, caption+"_"+col+"al", caption+"_Rank")
				continue
			}
			prefix := prefixes[b.Prefix]
			names = append(names, prefix+"_"+col+"_score", prefix+"_"+col+"_rank")
		}
	}

	names = append(names, s.Trailing...)
	h.RenamedHeaders = names
	return slices.Clone(names), nil
}

// BuildHeaderNames applies DefaultSchema.
func BuildHeaderNames(h *Header) ([]string, error) {
	return DefaultSchema.BuildHeaderNames(h)
}

// BuildPrefixes abbreviates each sub-caption to the first three characters of
// every word: "Music Ensemble" becomes "MusEns".
func BuildPrefixes(subCaptions []string) []string {
	prefixes := make([]string, 0, len(subCaptions))
	for _, text := range subCaptions {
		var b strings.Builder
		for _, word := range strings.Fields(text) {
			b.WriteString(firstRunes(word, 3))
		}
		prefixes = append(prefixes, b.String())
	}
	return prefixes
}

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func lastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[len(r)-1])
}
