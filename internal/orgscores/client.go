package orgscores

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/url"
	"strings"
	"time"

	"github.com/pfrederiksen/band-recaps/internal/jsonp"
	"github.com/pfrederiksen/band-recaps/internal/logger"
)

const (
	BaseURL    = "https://bridge.competitionsuite.com/api/orgscores"
	APIVersion = "1.1.5"
	Callback   = "jQuery110209904385531594735_1763353270252"

	// DefaultJitter bounds the random pause before each API call.
	DefaultJitter = 3 * time.Second
)

// Fetcher retrieves the raw body of a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Config configures a Client.
type Config struct {
	BaseURL string
	// Delay and Jitter set the pause before every call: Delay plus a random
	// duration in [0, Jitter).
	Delay  time.Duration
	Jitter time.Duration
}

// DefaultConfig returns the production endpoint and pacing.
func DefaultConfig() Config {
	return Config{
		BaseURL: BaseURL,
		Jitter:  DefaultJitter,
	}
}

// Client talks to the CompetitionSuite orgscores JSONP API.
type Client struct {
	fetcher Fetcher
	cfg     Config
}

// NewClient creates a Client. An empty BaseURL uses the production endpoint.
func NewClient(fetcher Fetcher, cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = BaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{fetcher: fetcher, cfg: cfg}
}

// GetCompetitionsBySeason lists the competitions of a season.
func (c *Client) GetCompetitionsBySeason(ctx context.Context, seasonGUID string) ([]CompetitionSummary, error) {
	params := url.Values{}
	params.Set("season", seasonGUID)
	params.Set("showTrainingEvents", "false")

	var resp struct {
		Competitions *[]CompetitionSummary `json:"competitions"`
	}
	if err := c.get(ctx, "GetCompetitionsBySeason", params, &resp); err != nil {
		return nil, err
	}
	if resp.Competitions == nil {
		return nil, &SchemaError{Endpoint: "GetCompetitionsBySeason", Key: "competitions"}
	}
	return *resp.Competitions, nil
}

// GetCompetition returns one competition with its rounds and performances.
func (c *Client) GetCompetition(ctx context.Context, competitionGUID string) (*Competition, error) {
	params := url.Values{}
	params.Set("competition", competitionGUID)

	var comp Competition
	if err := c.get(ctx, "GetCompetition", params, &comp); err != nil {
		return nil, err
	}
	return &comp, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, v interface{}) error {
	if err := c.pause(ctx); err != nil {
		return err
	}

	params.Set("version", APIVersion)
	params.Set("callback", Callback)
	u := fmt.Sprintf("%s/%s/jsonp?%s", c.cfg.BaseURL, endpoint, params.Encode())

	logger.Debug("Calling orgscores API", logger.Fields{
		"endpoint": endpoint,
		"url":      u,
	})

	start := time.Now()
	body, err := c.fetcher.Fetch(ctx, u)
	logger.RecordTiming("orgscores.request", time.Since(start))
	logger.IncrCounter("orgscores.requests")
	if err != nil {
		return fmt.Errorf("calling %s: %w", endpoint, err)
	}

	if err := jsonp.Decode(body, v); err != nil {
		return fmt.Errorf("%s: %w", endpoint, err)
	}
	return nil
}

func (c *Client) pause(ctx context.Context) error {
	d := c.cfg.Delay
	if c.cfg.Jitter > 0 {
		d += rand.N(c.cfg.Jitter)
	}
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
