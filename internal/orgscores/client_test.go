package orgscores

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pfrederiksen/band-recaps/internal/jsonp"
	"github.com/pfrederiksen/band-recaps/internal/scraper"
)

const seasonGUID = "ff7a5f4b-b7dc-4cbc-ad0b-1295fdd971a8"

const competitionsJSON = `{"competitions":[
	{"competitionGuid":"comp-1","name":"Lehi Invitational","competitionDate":"2025-09-20","location":"Lehi, UT"},
	{"competitionGuid":"comp-2","name":"UMEA State Finals","competitionDate":"2025-10-25","location":"Provo, UT"}
]}`

var competitionJSON = map[string]string{
	"comp-1": `{
		"seasonGuid":"` + seasonGUID + `","competitionGuid":"comp-1","name":"Lehi Invitational",
		"competitionDate":"2025-09-20","location":"Lehi, UT","recapUrl":"https://recaps.competitionsuite.com/comp-1.htm",
		"rounds":[
			{"divisionGuid":"div-4a","roundGuid":"round-b","name":"4A Open","fullRecapUrl":"https://recaps.competitionsuite.com/round-b.htm",
			 "performances":[
				{"performanceGuid":"p1","name":"Lehi","city":"Lehi","state":"UT","score":87.35,"rank":1},
				{"performanceGuid":"p2","name":"Skyridge","city":"Lehi","state":"UT","score":"85.10","rank":"2"}
			 ]},
			{"divisionGuid":"div-2a","roundGuid":"round-a","name":"2A Open","fullRecapUrl":"https://recaps.competitionsuite.com/round-a.htm",
			 "performances":[
				{"performanceGuid":"p3","name":"Juab","city":"Nephi","state":"UT","score":null,"rank":null}
			 ]}
		]}`,
	"comp-2": `{
		"seasonGuid":"` + seasonGUID + `","competitionGuid":"comp-2","name":"UMEA State Finals",
		"competitionDate":"2025-10-25","location":"Provo, UT",
		"rounds":[
			{"divisionGuid":"div-4a","roundGuid":"round-b","name":"4A Open",
			 "performances":[{"performanceGuid":"p4","name":"Orem","city":"Orem","state":"UT","score":80,"rank":3}]}
		]}`,
}

// newAPIServer serves the two orgscores endpoints with JSONP envelopes.
func newAPIServer(t *testing.T, competitions string) (*httptest.Server, *[]string) {
	t.Helper()

	var (
		mu    sync.Mutex
		paths []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		q := r.URL.Query()

		if q.Get("version") != APIVersion {
			t.Errorf("version = %q, want %q", q.Get("version"), APIVersion)
		}
		callback := q.Get("callback")
		if callback == "" {
			t.Error("callback parameter missing")
		}

		var payload string
		switch r.URL.Path {
		case "/GetCompetitionsBySeason/jsonp":
			if q.Get("showTrainingEvents") != "false" {
				t.Errorf("showTrainingEvents = %q, want false", q.Get("showTrainingEvents"))
			}
			if q.Get("season") != seasonGUID {
				t.Errorf("season = %q", q.Get("season"))
			}
			payload = competitions
		case "/GetCompetition/jsonp":
			var ok bool
			payload, ok = competitionJSON[q.Get("competition")]
			if !ok {
				http.NotFound(w, r)
				return
			}
		default:
			http.NotFound(w, r)
			return
		}

		fmt.Fprintf(w, "%s(%s);", callback, payload)
	}))
	t.Cleanup(server.Close)
	return server, &paths
}

func newTestClient(baseURL string) *Client {
	return NewClient(scraper.NewWithConfig(5*time.Second, "", 0), Config{BaseURL: baseURL})
}

func TestGetCompetitionsBySeason(t *testing.T) {
	server, _ := newAPIServer(t, competitionsJSON)

	competitions, err := newTestClient(server.URL).GetCompetitionsBySeason(context.Background(), seasonGUID)
	if err != nil {
		t.Fatalf("GetCompetitionsBySeason failed: %v", err)
	}

	if len(competitions) != 2 {
		t.Fatalf("got %d competitions, want 2", len(competitions))
	}
	if competitions[1].CompetitionGUID != "comp-2" || competitions[1].Location != "Provo, UT" {
		t.Errorf("unexpected competition: %+v", competitions[1])
	}
}

func TestGetCompetitionsBySeason_MissingKey(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"no competitions key", `{"seasons":[]}`},
		{"null competitions", `{"competitions":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newAPIServer(t, tt.payload)

			_, err := newTestClient(server.URL).GetCompetitionsBySeason(context.Background(), seasonGUID)

			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected *SchemaError, got %v", err)
			}
			if schemaErr.Key != "competitions" {
				t.Errorf("Key = %q, want competitions", schemaErr.Key)
			}
		})
	}
}

func TestGetCompetitionsBySeason_EmptyList(t *testing.T) {
	server, _ := newAPIServer(t, `{"competitions":[]}`)

	competitions, err := newTestClient(server.URL).GetCompetitionsBySeason(context.Background(), seasonGUID)
	if err != nil {
		t.Fatalf("GetCompetitionsBySeason failed: %v", err)
	}
	if len(competitions) != 0 {
		t.Errorf("expected no competitions, got %v", competitions)
	}
}

func TestGetCompetition_NotJSONP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rounds":[]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GetCompetition(context.Background(), "comp-1")

	var formatErr *jsonp.FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected *jsonp.FormatError, got %v", err)
	}
	if !strings.Contains(err.Error(), "GetCompetition") {
		t.Errorf("error %q should name the endpoint", err)
	}
}

func TestGetCompetition_Values(t *testing.T) {
	server, _ := newAPIServer(t, competitionsJSON)

	comp, err := newTestClient(server.URL).GetCompetition(context.Background(), "comp-1")
	if err != nil {
		t.Fatalf("GetCompetition failed: %v", err)
	}

	perfs := comp.Rounds[0].Performances
	tests := []struct {
		name string
		got  Value
		want string
	}{
		{"numeric score", perfs[0].Score, "87.35"},
		{"numeric rank", perfs[0].Rank, "1"},
		{"string score", perfs[1].Score, "85.10"},
		{"string rank", perfs[1].Rank, "2"},
		{"null score", comp.Rounds[1].Performances[0].Score, ""},
	}
	for _, tt := range tests {
		if tt.got.String() != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestClient_PauseCancelled(t *testing.T) {
	client := NewClient(scraper.New(), Config{BaseURL: "http://127.0.0.1:1", Delay: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := client.GetCompetition(ctx, "comp-1")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Error("cancelled pause should return immediately")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.BaseURL != BaseURL {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Delay != 0 || cfg.Jitter != 3*time.Second {
		t.Errorf("Delay/Jitter = %v/%v, want 0s/3s", cfg.Delay, cfg.Jitter)
	}
}
