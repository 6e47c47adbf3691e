package game

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// RosterFile represents the top-level YAML structure.
type RosterFile struct {
	Factions []FactionEntry `yaml:"factions"`
}

// FactionEntry is one faction and its champion pool.
type FactionEntry struct {
	ID        string        `yaml:"id"`
	Name      string        `yaml:"name"`
	Champions []RosterEntry `yaml:"champions"`
}

// ParseRoster parses roster YAML.
func ParseRoster(data []byte) (*RosterFile, error) {
	var rf RosterFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse roster YAML: %w", err)
	}
	seen := make(map[string]bool, len(rf.Factions))
	for _, f := range rf.Factions {
		if f.ID == "" {
			return nil, fmt.Errorf("parse roster YAML: faction %q has no id", f.Name)
		}
		if seen[f.ID] {
			return nil, fmt.Errorf("parse roster YAML: duplicate faction %q", f.ID)
		}
		seen[f.ID] = true
	}
	return &rf, nil
}

// ParseRosterFile reads and parses a roster YAML file.
func ParseRosterFile(path string) (*RosterFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRoster(data)
}

// Pool returns the roster keyed by faction id, as BuildDecks expects.
func (rf *RosterFile) Pool() map[string][]RosterEntry {
	pool := make(map[string][]RosterEntry, len(rf.Factions))
	for _, f := range rf.Factions {
		pool[f.ID] = f.Champions
	}
	return pool
}

// FactionIDs returns faction ids in file order.
func (rf *RosterFile) FactionIDs() []string {
	ids := make([]string, len(rf.Factions))
	for i, f := range rf.Factions {
		ids[i] = f.ID
	}
	return ids
}

// Decks builds every faction's deck from the roster.
func (rf *RosterFile) Decks() map[string][]Card {
	return BuildDecks(rf.Pool())
}

// DeckFor returns the deck for a faction id.
func (rf *RosterFile) DeckFor(faction string) ([]Card, error) {
	decks := rf.Decks()
	deck, ok := decks[faction]
	if !ok {
		known := rf.FactionIDs()
		sort.Strings(known)
		return nil, fmt.Errorf("faction %q not found (have %v)", faction, known)
	}
	return deck, nil
}
