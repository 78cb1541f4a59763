// Package storage provides JSON-based persistence for scrape state.
//
// The data directory holds state.json, which tracks every round GUID seen and
// when its recap was scraped, and mismatches.log, which lists recap URLs whose
// rows did not fit their header. The default location is
// ~/.local/share/band-recaps/.
package storage
