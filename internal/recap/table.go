package recap

import (
	"fmt"
	"slices"
)

// Columns injected by the loaders.
const (
	ColumnRoundGUID = "round_guid"
	ColumnSourceURL = "source_url"
)

// Record is one band row keyed by column name.
type Record map[string]string

// Table is the labelled result of loading one or more recaps.
type Table struct {
	// Header holds the semantic columns shared by every round.
	Header []string `json:"header"`
	// Columns is Header with repeated names suffixed ("SPACER_2") followed
	// by the injected columns. Records are keyed by Columns.
	Columns []string `json:"columns"`
	Records []Record `json:"records"`
}

func newTable(header []string, injected ...string) *Table {
	columns := make([]string, 0, len(header)+len(injected))
	columns = append(columns, UniqueNames(header)...)
	columns = append(columns, injected...)
	return &Table{
		Header:  slices.Clone(header),
		Columns: columns,
		Records: make([]Record, 0),
	}
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.Records)
}

// Row returns record i ordered by Columns; absent values are empty.
func (t *Table) Row(i int) []string {
	rec := t.Records[i]
	row := make([]string, len(t.Columns))
	for j, col := range t.Columns {
		row[j] = rec[col]
	}
	return row
}

// zip pairs header names with values positionally, stopping at the shorter.
func zip(header, values []string) Record {
	rec := make(Record, len(header)+2)
	for i := 0; i < len(header) && i < len(values); i++ {
		rec[header[i]] = values[i]
	}
	return rec
}

// UniqueNames returns names with each repeat suffixed by its occurrence
// count: "SPACER", "SPACER" becomes "SPACER", "SPACER_2".
func UniqueNames(names []string) []string {
	seen := make(map[string]int, len(names))
	out := make([]string, len(names))
	for i, name := range names {
		seen[name]++
		if n := seen[name]; n > 1 {
			out[i] = fmt.Sprintf("%s_%d", name, n)
			continue
		}
		out[i] = name
	}
	return out
}
