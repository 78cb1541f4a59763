package notifier

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/pfrederiksen/band-recaps/internal/orgscores"
)

// DryRunNotifier prints what would be posted without actually posting
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a dry-run notifier that prints to w
func NewDryRunNotifier(w io.Writer) *DryRunNotifier {
	return &DryRunNotifier{out: w}
}

// Notify prints the posts that would be made
func (n *DryRunNotifier) Notify(results []orgscores.RoundResult) error {
	for i, r := range results {
		tweet := formatTweet(r)
		fmt.Fprintf(n.out, "--- Tweet %d/%d ---\n", i+1, len(results))
		fmt.Fprintln(n.out, tweet)
		fmt.Fprintf(n.out, "\n(Length: %d characters)\n\n", utf8.RuneCountInString(tweet))
	}
	return nil
}
