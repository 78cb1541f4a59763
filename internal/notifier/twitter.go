package notifier

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"
	"github.com/pfrederiksen/band-recaps/internal/logger"
	"github.com/pfrederiksen/band-recaps/internal/orgscores"
)

// PostInterval is the pause between consecutive posts.
const PostInterval = 2 * time.Second

type statusUpdater interface {
	Update(status string, params *twitter.StatusUpdateParams) (*twitter.Tweet, *http.Response, error)
}

// TwitterNotifier posts round results to Twitter
type TwitterNotifier struct {
	statuses statusUpdater
	interval time.Duration
}

// NewTwitterNotifier creates a new Twitter notifier using environment variables
// Required environment variables:
// - TWITTER_API_KEY
// - TWITTER_API_SECRET
// - TWITTER_ACCESS_TOKEN
// - TWITTER_ACCESS_SECRET
func NewTwitterNotifier() (*TwitterNotifier, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_SECRET")

	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials in environment variables")
	}

	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	client := twitter.NewClient(httpClient)

	return &TwitterNotifier{statuses: client.Statuses, interval: PostInterval}, nil
}

// Notify posts one tweet per round, stopping at the first failure
func (n *TwitterNotifier) Notify(results []orgscores.RoundResult) error {
	for i, r := range results {
		tweet := formatTweet(r)

		posted, _, err := n.statuses.Update(tweet, nil)
		if err != nil {
			return fmt.Errorf("failed to post tweet for round %s: %w", r.RoundGUID, err)
		}

		fields := logger.Fields{"round_guid": r.RoundGUID}
		if posted != nil {
			fields["tweet_id"] = posted.IDStr
		}
		logger.Info("Posted round result", fields)

		if i < len(results)-1 && n.interval > 0 {
			time.Sleep(n.interval)
		}
	}

	return nil
}
