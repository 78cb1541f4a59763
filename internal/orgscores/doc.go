// Package orgscores reads season and competition results from the
// CompetitionSuite orgscores JSONP API and flattens them into score rows.
//
// Every call waits Config.Delay plus a random share of Config.Jitter first, so
// a full season crawl stays polite to the upstream service.
package orgscores
