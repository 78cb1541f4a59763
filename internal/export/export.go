package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pfrederiksen/band-recaps/internal/orgscores"
	"github.com/pfrederiksen/band-recaps/internal/recap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Format is an output file format.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatXLSX   Format = "xlsx"
	FormatSQLite Format = "sqlite"
)

// Formats lists the supported formats.
var Formats = []Format{FormatCSV, FormatJSON, FormatXLSX, FormatSQLite}

// ParseFormat parses a format name. An empty name means CSV.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatCSV, nil
	}
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want csv, json, xlsx or sqlite)", s)
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	if f == FormatSQLite {
		return "db"
	}
	return string(f)
}

// Dataset is a table of string values ready to be written.
type Dataset struct {
	// Name is used as the SQLite table name.
	Name    string
	Columns []string
	Rows    [][]string
}

// FromTable converts a recap table, ordering values by its columns.
func FromTable(t *recap.Table) *Dataset {
	ds := &Dataset{
		Name:    DefaultTableName,
		Columns: t.Columns,
		Rows:    make([][]string, 0, t.Len()),
	}
	for i := range t.Records {
		ds.Rows = append(ds.Rows, t.Row(i))
	}
	return ds
}

// FromScores converts season score rows.
func FromScores(rows []orgscores.ScoreRow) *Dataset {
	ds := &Dataset{
		Name:    "scores",
		Columns: orgscores.ScoreColumns,
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		ds.Rows = append(ds.Rows, r.Values())
	}
	return ds
}

// WriteFile writes ds to path in the given format.
func WriteFile(path string, format Format, ds *Dataset) error {
	switch format {
	case FormatSQLite:
		return WriteSQLite(path, ds)
	case FormatXLSX:
		return WriteXLSX(path, ds)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case FormatJSON:
		err = WriteJSON(f, ds)
	default:
		err = WriteCSV(f, ds)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// WriteCSV writes a header line followed by one line per row.
func WriteCSV(w io.Writer, ds *Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ds.Columns); err != nil {
		return err
	}
	if err := cw.WriteAll(ds.Rows); err != nil {
		return err
	}
	return cw.Error()
}

// WriteJSON writes the rows as an array of objects keyed by column.
func WriteJSON(w io.Writer, ds *Dataset) error {
	objects := make([]map[string]string, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		obj := make(map[string]string, len(ds.Columns))
		for i, col := range ds.Columns {
			if i < len(row) {
				obj[col] = row[i]
			}
		}
		objects = append(objects, obj)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(objects)
}

// WriteScores writes season score rows as CSV.
func WriteScores(w io.Writer, rows []orgscores.ScoreRow) error {
	return WriteCSV(w, FromScores(rows))
}

// WriteGUIDs writes one GUID per CSV line, without a header.
func WriteGUIDs(w io.Writer, guids []string) error {
	cw := csv.NewWriter(w)
	for _, guid := range guids {
		if err := cw.Write([]string{guid}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
