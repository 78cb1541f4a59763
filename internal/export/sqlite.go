package export

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/pfrederiksen/band-recaps/internal/recap"
)

// DefaultTableName is the SQLite table recap rows are written to.
const DefaultTableName = "recaps"

// WriteSQLite appends ds to a table in the database at path, creating the
// table when it does not exist. All rows go in one transaction.
func WriteSQLite(path string, ds *Dataset) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer db.Close()

	table := ds.Name
	if table == "" {
		table = DefaultTableName
	}
	// SQLite rejects duplicate column names.
	cols := recap.UniqueNames(ds.Columns)

	defs := make([]string, len(cols))
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c)
		defs[i] = quoted[i] + " TEXT"
	}

	create := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", quoteIdent(table), strings.Join(defs, ", "))
	if _, err := db.Exec(create); err != nil {
		return fmt.Errorf("creating table %s: %w", table, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	placeholders := strings.TrimRight(strings.Repeat("?,", len(cols)), ",")
	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(quoted, ", "), placeholders))
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range ds.Rows {
		args := make([]interface{}, len(cols))
		for j := range cols {
			if j < len(row) {
				args[j] = row[j]
			} else {
				args[j] = ""
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("inserting row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
