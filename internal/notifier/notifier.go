package notifier

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pfrederiksen/band-recaps/internal/orgscores"
)

// TweetLimit is the maximum post length in characters.
const TweetLimit = 280

// Notifier defines the interface for posting round results
type Notifier interface {
	// Notify posts one announcement per round
	Notify(results []orgscores.RoundResult) error
}

// formatTweet formats a round result as a post
func formatTweet(r orgscores.RoundResult) string {
	var b strings.Builder
	b.WriteString("🎺 New recap posted!\n\n")
	fmt.Fprintf(&b, "🏟️ %s\n", r.CompetitionName)
	fmt.Fprintf(&b, "🎼 %s", r.Division)
	if r.Bands > 0 {
		fmt.Fprintf(&b, " (%d bands)", r.Bands)
	}
	b.WriteString("\n")

	if r.CompetitionDate != "" {
		fmt.Fprintf(&b, "📅 %s\n", r.CompetitionDate)
	}

	if r.Winner != "" {
		fmt.Fprintf(&b, "🏆 %s", r.Winner)
		if r.Score != "" {
			fmt.Fprintf(&b, " - %s", r.Score)
		}
		b.WriteString("\n")
	}

	if r.RoundGUID != "" {
		fmt.Fprintf(&b, "\n🔗 recaps.competitionsuite.com/%s.htm\n", r.RoundGUID)
	}
	b.WriteString("\n#MarchingBand #UMEA")

	return truncate(b.String(), TweetLimit)
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-3]) + "..."
}
