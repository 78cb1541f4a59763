package recap

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DefaultTableIndex is the position of the score table among all <table>
	// elements on a recap page.
	DefaultTableIndex = 1

	// DataRowOffset is the first row holding band scores; rows above it are
	// division, caption, sub-caption, judge and column header rows.
	DataRowOffset = 6
)

const (
	rowDivision     = 0
	rowCaptions     = 2
	rowSubCaptions  = 3
	rowJudges       = 4
	rowTableHeaders = 5
)

// Header is the metadata block at the top of a recap table.
type Header struct {
	Division       string   `json:"division"`
	Captions       []string `json:"captions"`
	SubCaptions    []string `json:"sub_captions"`
	Judges         []string `json:"judges"`
	TableHeaders   []string `json:"table_headers"`
	RenamedHeaders []string `json:"renamed_headers,omitempty"`
}

// Page is a parsed recap document with its score table located.
type Page struct {
	URL   string
	table *goquery.Selection
	rows  *goquery.Selection
}

// ParsePage parses a recap document and locates the table at tableIndex.
func ParsePage(r io.Reader, sourceURL string, tableIndex int) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	tables := doc.Find("table")
	if tableIndex < 0 || tableIndex >= tables.Length() {
		return nil, &StructureError{
			URL:    sourceURL,
			Detail: fmt.Sprintf("could not find table at index %d, found only %d table(s)", tableIndex, tables.Length()),
		}
	}

	table := tables.Eq(tableIndex)
	return &Page{
		URL:   sourceURL,
		table: table,
		rows:  ownRows(table),
	}, nil
}

// ownRows returns the rows of table, leaving out rows of tables nested in its cells.
func ownRows(table *goquery.Selection) *goquery.Selection {
	return table.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.Closest("table").IsSelection(table)
	})
}

// Rows returns the number of rows in the located table.
func (p *Page) Rows() int {
	if p == nil || p.rows == nil {
		return 0
	}
	return p.rows.Length()
}

// ParseHeader reads the fixed header rows of the table. Counts are not
// checked here; see Schema.Validate.
func (p *Page) ParseHeader() (*Header, error) {
	if p == nil || p.table == nil || p.Rows() == 0 {
		return nil, &StateError{Op: "parse header"}
	}

	read := func(index int, name string) ([]string, error) {
		texts, err := ExtractRowText(p.rows, index)
		if err != nil {
			return nil, &StructureError{URL: p.URL, Detail: "missing " + name + " row", Err: err}
		}
		return texts, nil
	}

	division, err := read(rowDivision, "division")
	if err != nil {
		return nil, err
	}
	captions, err := read(rowCaptions, "captions")
	if err != nil {
		return nil, err
	}
	subCaptions, err := read(rowSubCaptions, "sub-captions")
	if err != nil {
		return nil, err
	}
	judges, err := read(rowJudges, "judges")
	if err != nil {
		return nil, err
	}
	tableHeaders, err := read(rowTableHeaders, "table headers")
	if err != nil {
		return nil, err
	}

	return &Header{
		Division:     strings.Join(division, " "),
		Captions:     captions,
		SubCaptions:  subCaptions,
		Judges:       judges,
		TableHeaders: tableHeaders,
	}, nil
}

// DataRows returns the rows at and after offset, in document order.
func (p *Page) DataRows(offset int) []*goquery.Selection {
	if p.Rows() <= offset {
		return nil
	}
	rows := make([]*goquery.Selection, 0, p.Rows()-offset)
	p.rows.Slice(offset, goquery.ToEnd).Each(func(_ int, tr *goquery.Selection) {
		rows = append(rows, tr)
	})
	return rows
}

// ExtractRowText returns the non-empty cell texts of rows[index], left to right.
func ExtractRowText(rows *goquery.Selection, index int) ([]string, error) {
	if rows == nil {
		return nil, &RangeError{Index: index, Len: 0}
	}
	if index < 0 || index >= rows.Length() {
		return nil, &RangeError{Index: index, Len: rows.Length()}
	}

	texts := make([]string, 0)
	rows.Eq(index).ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
		if text := cellText(cell); text != "" {
			texts = append(texts, text)
		}
	})
	return texts, nil
}

// cellText returns the trimmed text of a cell with inner whitespace runs collapsed.
func cellText(cell *goquery.Selection) string {
	return strings.Join(strings.Fields(cell.Text()), " ")
}
