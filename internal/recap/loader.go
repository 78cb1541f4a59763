package recap

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/pfrederiksen/band-recaps/internal/logger"
)

// Fetcher retrieves the raw body of a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// MismatchRecorder keeps a record of recaps whose rows did not fit the header.
type MismatchRecorder interface {
	RecordMismatch(url string) error
}

type nopRecorder struct{}

func (nopRecorder) RecordMismatch(string) error { return nil }

// Options configures a Loader. Start from DefaultOptions.
type Options struct {
	TableIndex    int
	DataRowOffset int
	Schema        *Schema
	Resolver      CityStateResolver
	Mismatches    MismatchRecorder

	// Lenient keeps rows whose length differs from the header, pairing values
	// with columns by position. Otherwise such a row fails the load.
	Lenient bool
}

// DefaultOptions returns the options matching the published recap layout.
func DefaultOptions() Options {
	return Options{
		TableIndex:    DefaultTableIndex,
		DataRowOffset: DataRowOffset,
		Schema:        &DefaultSchema,
		Resolver:      NewStaticResolver(DefaultSchools),
		Mismatches:    nopRecorder{},
	}
}

// Loader turns recap pages into tables.
type Loader struct {
	fetcher Fetcher
	opts    Options
}

// NewLoader creates a Loader. Nil Schema, Resolver and Mismatches fall back to defaults.
func NewLoader(fetcher Fetcher, opts Options) *Loader {
	defaults := DefaultOptions()
	if opts.Schema == nil {
		opts.Schema = defaults.Schema
	}
	if opts.Resolver == nil {
		opts.Resolver = defaults.Resolver
	}
	if opts.Mismatches == nil {
		opts.Mismatches = defaults.Mismatches
	}
	return &Loader{fetcher: fetcher, opts: opts}
}

// HeaderColumns fetches url and derives the column names from its header rows.
func (l *Loader) HeaderColumns(ctx context.Context, url string) ([]string, error) {
	page, err := l.fetchPage(ctx, url)
	if err != nil {
		return nil, err
	}
	return l.headerColumns(page)
}

// LoadRecap loads one round. When headerCols is nil the header is parsed from
// the page; otherwise headerCols is used as is, since every round of a season
// shares one layout.
func (l *Loader) LoadRecap(ctx context.Context, url string, headerCols []string) (*Table, error) {
	page, err := l.fetchPage(ctx, url)
	if err != nil {
		return nil, err
	}

	if headerCols == nil {
		headerCols, err = l.headerColumns(page)
		if err != nil {
			return nil, err
		}
	}

	guid := RoundGUIDFromURL(url)
	table := newTable(headerCols, ColumnRoundGUID)

	for i, row := range page.DataRows(l.opts.DataRowOffset) {
		rowIndex := l.opts.DataRowOffset + i

		values, err := ParseScoreRow(row, l.opts.Resolver)
		if err != nil {
			return nil, fmt.Errorf("parsing row %d of %s: %w", rowIndex, url, err)
		}
		if values == nil {
			continue
		}

		if len(values) != len(headerCols) {
			if err := l.mismatch(url, rowIndex, len(headerCols), len(values)); err != nil {
				return nil, err
			}
		}

		rec := zip(table.Columns[:len(headerCols)], values)
		rec[ColumnRoundGUID] = guid
		table.Records = append(table.Records, rec)
	}

	logger.IncrCounter("recaps.loaded")
	logger.Debug("Loaded recap", logger.Fields{
		"url":        url,
		"round_guid": guid,
		"rows":       table.Len(),
	})

	return table, nil
}

// LoadMultipleRecaps loads urls in order and concatenates their rows, tagging
// each with the URL it came from. A nil headerCols is computed from the first
// URL and reused for the rest.
func (l *Loader) LoadMultipleRecaps(ctx context.Context, urls []string, headerCols []string) (*Table, error) {
	combined := newTable(headerCols, ColumnRoundGUID, ColumnSourceURL)

	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		t, err := l.LoadRecap(ctx, url, headerCols)
		if err != nil {
			return nil, err
		}

		if i == 0 && headerCols == nil {
			headerCols = t.Header
			combined = newTable(headerCols, ColumnRoundGUID, ColumnSourceURL)
		}

		for _, rec := range t.Records {
			rec[ColumnSourceURL] = url
			combined.Records = append(combined.Records, rec)
		}
	}

	return combined, nil
}

func (l *Loader) fetchPage(ctx context.Context, url string) (*Page, error) {
	start := time.Now()
	body, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching recap %s: %w", url, err)
	}
	logger.RecordTiming("recap.fetch", time.Since(start))

	return ParsePage(bytes.NewReader(body), url, l.opts.TableIndex)
}

func (l *Loader) headerColumns(page *Page) ([]string, error) {
	header, err := page.ParseHeader()
	if err != nil {
		return nil, err
	}
	cols, err := l.opts.Schema.BuildHeaderNames(header)
	if err != nil {
		return nil, fmt.Errorf("building header for %s: %w", page.URL, err)
	}
	return cols, nil
}

// mismatch records a row whose length differs from the header. Lenient loads
// continue; the rest stop with a SchemaMismatchError.
func (l *Loader) mismatch(url string, row, expected, actual int) error {
	logger.IncrCounter("recaps.mismatch")
	if err := l.opts.Mismatches.RecordMismatch(url); err != nil {
		return fmt.Errorf("recording mismatch: %w", err)
	}

	if !l.opts.Lenient {
		return &SchemaMismatchError{
			Schema:   l.opts.Schema.Version,
			URL:      url,
			Field:    "data row",
			Row:      row,
			Expected: expected,
			Actual:   actual,
		}
	}

	logger.Warn("Row length does not match header", logger.Fields{
		"url":      url,
		"row":      row,
		"expected": expected,
		"actual":   actual,
	})
	return nil
}
