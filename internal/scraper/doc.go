// Package scraper fetches pages from CompetitionSuite for the recap and API clients.
//
// Every request carries the band-recaps User-Agent and a timeout. Network
// errors, 5xx responses and 429 responses are retried with exponential backoff;
// other non-200 responses fail immediately.
package scraper
