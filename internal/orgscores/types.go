package orgscores

import (
	"bytes"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Season names a season and its GUID on the orgscores API.
type Season struct {
	Name string `mapstructure:"name" json:"name"`
	GUID string `mapstructure:"guid" json:"guid"`
}

// CompetitionSummary is one entry of GetCompetitionsBySeason.
type CompetitionSummary struct {
	CompetitionGUID string `json:"competitionGuid"`
	Name            string `json:"name"`
	CompetitionDate string `json:"competitionDate"`
	Location        string `json:"location"`
}

// Competition is the GetCompetition payload.
type Competition struct {
	SeasonGUID      string  `json:"seasonGuid"`
	CompetitionGUID string  `json:"competitionGuid"`
	Name            string  `json:"name"`
	CompetitionDate string  `json:"competitionDate"`
	Location        string  `json:"location"`
	RecapURL        string  `json:"recapUrl"`
	Rounds          []Round `json:"rounds"`
}

// Round is one division's results within a competition.
type Round struct {
	DivisionGUID     string        `json:"divisionGuid"`
	RoundGUID        string        `json:"roundGuid"`
	Name             string        `json:"name"`
	FullRecapURL     string        `json:"fullRecapUrl"`
	CategoryRecapURL string        `json:"categoryRecapUrl"`
	Performances     []Performance `json:"performances"`
}

// Performance is one band's result in a round.
type Performance struct {
	PerformanceGUID string `json:"performanceGuid"`
	Name            string `json:"name"`
	City            string `json:"city"`
	State           string `json:"state"`
	Score           Value  `json:"score"`
	Rank            Value  `json:"rank"`
}

// Value holds a score or rank that the API sends as a number, a string or null.
type Value string

// UnmarshalJSON keeps numbers in their literal form and maps null to "".
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value(s)
	case len(data) > 0 && (data[0] == '{' || data[0] == '['):
		return fmt.Errorf("unexpected value %s", data)
	default:
		*v = Value(data)
	}
	return nil
}

func (v Value) String() string {
	return string(v)
}

// SchemaError reports a response missing a required key.
type SchemaError struct {
	Endpoint string
	Key      string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: cannot find %q in API response", e.Endpoint, e.Key)
}
