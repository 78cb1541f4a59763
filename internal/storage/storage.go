package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	DefaultDataDir  = "~/.local/share/band-recaps"
	StateFile       = "state.json"
	MismatchLogFile = "mismatches.log"
)

// Storage handles persistence of scrape state
type Storage struct {
	dataDir string
	mu      sync.Mutex
}

// New creates a new Storage instance
func New(dataDir string) (*Storage, error) {
	dataDir, err := ExpandPath(dataDir)
	if err != nil {
		return nil, err
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// ExpandPath replaces a leading ~ with the home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/")), nil
}

// Dir returns the data directory
func (s *Storage) Dir() string {
	return s.dataDir
}

// Path returns name inside the data directory
func (s *Storage) Path(name string) string {
	return filepath.Join(s.dataDir, name)
}

// LoadState loads the state from disk
func (s *Storage) LoadState() (*State, error) {
	data, err := os.ReadFile(s.Path(StateFile))
	if err != nil {
		if os.IsNotExist(err) {
			// First run, nothing scraped yet
			return NewState(), nil
		}
		return nil, fmt.Errorf("reading state: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parsing state: %w", err)
	}

	if state.Rounds == nil {
		state.Rounds = make(map[string]*Round)
	}

	return &state, nil
}

// SaveState saves the state to disk
func (s *Storage) SaveState(state *State) error {
	state.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	if err := os.WriteFile(s.Path(StateFile), data, 0644); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}

	return nil
}

// RecordMismatch appends url to the mismatch log.
func (s *Storage) RecordMismatch(url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.Path(MismatchLogFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening mismatch log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(url + "\n"); err != nil {
		return fmt.Errorf("writing mismatch log: %w", err)
	}
	return nil
}
