package orgscores

import (
	"context"
	"fmt"
	"slices"

	"github.com/pfrederiksen/band-recaps/internal/logger"
)

// ScoreColumns are the column names of a ScoreRow, in order.
var ScoreColumns = []string{
	"season_guid",
	"season_name",
	"competition_guid",
	"competition_name",
	"competition_date",
	"competition_location",
	"division_guid",
	"division_name",
	"round_guid",
	"full_recap_url",
	"performance_guid",
	"band_name",
	"city",
	"state",
	"score",
	"rank",
}

// ScoreRow is one performance flattened together with its round and competition.
type ScoreRow struct {
	SeasonGUID          string `json:"season_guid"`
	SeasonName          string `json:"season_name"`
	CompetitionGUID     string `json:"competition_guid"`
	CompetitionName     string `json:"competition_name"`
	CompetitionDate     string `json:"competition_date"`
	CompetitionLocation string `json:"competition_location"`
	DivisionGUID        string `json:"division_guid"`
	DivisionName        string `json:"division_name"`
	RoundGUID           string `json:"round_guid"`
	FullRecapURL        string `json:"full_recap_url"`
	PerformanceGUID     string `json:"performance_guid"`
	BandName            string `json:"band_name"`
	City                string `json:"city"`
	State               string `json:"state"`
	Score               string `json:"score"`
	Rank                string `json:"rank"`
}

// Values returns the row in ScoreColumns order.
func (r ScoreRow) Values() []string {
	return []string{
		r.SeasonGUID,
		r.SeasonName,
		r.CompetitionGUID,
		r.CompetitionName,
		r.CompetitionDate,
		r.CompetitionLocation,
		r.DivisionGUID,
		r.DivisionName,
		r.RoundGUID,
		r.FullRecapURL,
		r.PerformanceGUID,
		r.BandName,
		r.City,
		r.State,
		r.Score,
		r.Rank,
	}
}

// Flatten turns a competition into one row per performance.
func Flatten(comp *Competition, seasonName string) []ScoreRow {
	if comp == nil {
		return nil
	}

	var rows []ScoreRow
	for _, rnd := range comp.Rounds {
		for _, perf := range rnd.Performances {
			rows = append(rows, ScoreRow{
				SeasonGUID:          comp.SeasonGUID,
				SeasonName:          seasonName,
				CompetitionGUID:     comp.CompetitionGUID,
				CompetitionName:     comp.Name,
				CompetitionDate:     comp.CompetitionDate,
				CompetitionLocation: comp.Location,
				DivisionGUID:        rnd.DivisionGUID,
				DivisionName:        rnd.Name,
				RoundGUID:           rnd.RoundGUID,
				FullRecapURL:        rnd.FullRecapURL,
				PerformanceGUID:     perf.PerformanceGUID,
				BandName:            perf.Name,
				City:                perf.City,
				State:               perf.State,
				Score:               perf.Score.String(),
				Rank:                perf.Rank.String(),
			})
		}
	}
	return rows
}

// Collection holds every score row of the collected seasons.
type Collection struct {
	Rows []ScoreRow
	// RoundGUIDs are the unique non-empty round GUIDs, sorted.
	RoundGUIDs []string
	// RecapURLs maps a round GUID to the recap page the API reported for it.
	RecapURLs map[string]string
}

// RecapURL returns the recap page reported for guid, or "" if none was.
func (c *Collection) RecapURL(guid string) string {
	return c.RecapURLs[guid]
}

// Collect fetches every competition of every season, in order.
func (c *Client) Collect(ctx context.Context, seasons []Season) (*Collection, error) {
	collection := &Collection{RecapURLs: make(map[string]string)}
	seen := make(map[string]bool)

	for _, season := range seasons {
		competitions, err := c.GetCompetitionsBySeason(ctx, season.GUID)
		if err != nil {
			return nil, fmt.Errorf("season %s: %w", season.Name, err)
		}

		logger.Info("Collecting season", logger.Fields{
			"season":       season.Name,
			"competitions": len(competitions),
		})

		for _, summary := range competitions {
			comp, err := c.GetCompetition(ctx, summary.CompetitionGUID)
			if err != nil {
				return nil, fmt.Errorf("competition %s: %w", summary.CompetitionGUID, err)
			}

			for _, row := range Flatten(comp, season.Name) {
				collection.Rows = append(collection.Rows, row)
				if row.RoundGUID != "" && !seen[row.RoundGUID] {
					seen[row.RoundGUID] = true
					collection.RoundGUIDs = append(collection.RoundGUIDs, row.RoundGUID)
				}
				if row.RoundGUID != "" && row.FullRecapURL != "" {
					collection.RecapURLs[row.RoundGUID] = row.FullRecapURL
				}
			}
		}
	}

	slices.Sort(collection.RoundGUIDs)
	logger.AddCounter("orgscores.rows", int64(len(collection.Rows)))
	return collection, nil
}

// RoundResult summarizes a round for announcements.
type RoundResult struct {
	RoundGUID       string
	CompetitionName string
	CompetitionDate string
	Division        string
	Winner          string
	Score           string
	Bands           int
}

// Summarize groups rows by round in first-seen order and picks the rank 1 band.
// Winner stays empty when no performance is ranked first.
func Summarize(rows []ScoreRow) []RoundResult {
	var results []RoundResult
	index := make(map[string]int)

	for _, row := range rows {
		i, ok := index[row.RoundGUID]
		if !ok {
			i = len(results)
			index[row.RoundGUID] = i
			results = append(results, RoundResult{
				RoundGUID:       row.RoundGUID,
				CompetitionName: row.CompetitionName,
				CompetitionDate: row.CompetitionDate,
				Division:        row.DivisionName,
			})
		}

		results[i].Bands++
		if row.Rank == "1" && results[i].Winner == "" {
			results[i].Winner = row.BandName
			results[i].Score = row.Score
		}
	}
	return results
}

// Filter returns the results whose round GUID is in guids.
func Filter(results []RoundResult, guids []string) []RoundResult {
	var out []RoundResult
	for _, r := range results {
		if slices.Contains(guids, r.RoundGUID) {
			out = append(out, r)
		}
	}
	return out
}
