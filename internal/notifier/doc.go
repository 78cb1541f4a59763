// Package notifier announces round results once their recaps are scraped.
//
// Posts go to Twitter through OAuth1, or to stdout in dry-run mode. Each post
// names the competition, the division and its winner.
package notifier
