package storage

import (
	"slices"
	"time"
)

// Round tracks one round GUID across runs.
type Round struct {
	GUID      string    `json:"guid"`
	FirstSeen time.Time `json:"first_seen"`
	ScrapedAt time.Time `json:"scraped_at,omitempty"`
}

// Scraped reports whether the round's recap has been loaded.
func (r *Round) Scraped() bool {
	return !r.ScrapedAt.IsZero()
}

// State is the snapshot of rounds persisted between runs.
type State struct {
	Rounds    map[string]*Round `json:"rounds"`
	UpdatedAt string            `json:"updated_at"`
}

// NewState creates an empty State
func NewState() *State {
	return &State{
		Rounds: make(map[string]*Round),
	}
}

// Observe records guids as seen, keeping the first-seen time of known rounds.
func (s *State) Observe(guids []string, now time.Time) {
	for _, guid := range guids {
		if guid == "" {
			continue
		}
		if _, ok := s.Rounds[guid]; !ok {
			s.Rounds[guid] = &Round{GUID: guid, FirstSeen: now.UTC()}
		}
	}
}

// NewRounds returns the guids that have not been scraped yet, sorted.
func (s *State) NewRounds(guids []string) []string {
	var fresh []string
	for _, guid := range guids {
		if guid == "" {
			continue
		}
		if r, ok := s.Rounds[guid]; ok && r.Scraped() {
			continue
		}
		fresh = append(fresh, guid)
	}
	slices.Sort(fresh)
	return slices.Compact(fresh)
}

// MarkScraped records that the recap of guid was loaded at now.
func (s *State) MarkScraped(guid string, now time.Time) {
	r, ok := s.Rounds[guid]
	if !ok {
		r = &Round{GUID: guid, FirstSeen: now.UTC()}
		s.Rounds[guid] = r
	}
	r.ScrapedAt = now.UTC()
}

// ScrapedCount returns how many rounds have been scraped.
func (s *State) ScrapedCount() int {
	n := 0
	for _, r := range s.Rounds {
		if r.Scraped() {
			n++
		}
	}
	return n
}
