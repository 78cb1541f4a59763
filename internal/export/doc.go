// Package export writes recap tables and season scores as CSV, JSON, XLSX or
// SQLite.
package export
