// Package dataset loads the player roster into an immutable in-memory
// snapshot. The snapshot is built once at startup and shared read-only by
// every request; duplicate names are detected at load time so lookups always
// resolve to exactly one record (first occurrence in dataset order).
package dataset

import "github.com/scoutcentral/scout-api/internal/models"

// Store is a frozen roster snapshot.
type Store interface {
	// Players returns all records in dataset order.
	Players() []models.PlayerRecord
	// FindByName returns the record for a player name, if present.
	FindByName(name string) (*models.PlayerRecord, bool)
	// PeersOf returns every record sharing the given canonical position.
	PeersOf(pos models.Position) []models.PlayerRecord
	// Names returns all player names in dataset order.
	Names() []string
	// Len returns the number of records.
	Len() int
}

// LoadReport describes what the loader kept and what it skipped.
type LoadReport struct {
	Rows       int
	Kept       int
	Duplicates []string // names seen more than once; first occurrence kept
	Skipped    int      // rows rejected for missing required columns
}

type snapshot struct {
	players []models.PlayerRecord
	byName  map[string]int
	byPos   map[models.Position][]int
}

// newSnapshot indexes records by name and canonical position. Duplicate names
// keep their first occurrence and are reported to the caller.
func newSnapshot(players []models.PlayerRecord) (*snapshot, []string) {
	s := &snapshot{
		players: players,
		byName:  make(map[string]int, len(players)),
		byPos:   make(map[models.Position][]int),
	}
	var dups []string
	for i, p := range players {
		if _, seen := s.byName[p.Name]; seen {
			dups = append(dups, p.Name)
		} else {
			s.byName[p.Name] = i
		}
		s.byPos[p.Position] = append(s.byPos[p.Position], i)
	}
	return s, dups
}

func (s *snapshot) Players() []models.PlayerRecord {
	out := make([]models.PlayerRecord, len(s.players))
	copy(out, s.players)
	return out
}

func (s *snapshot) FindByName(name string) (*models.PlayerRecord, bool) {
	i, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	p := s.players[i]
	return &p, true
}

func (s *snapshot) PeersOf(pos models.Position) []models.PlayerRecord {
	idx := s.byPos[pos]
	out := make([]models.PlayerRecord, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.players[i])
	}
	return out
}

func (s *snapshot) Names() []string {
	out := make([]string, 0, len(s.players))
	for i, p := range s.players {
		if s.byName[p.Name] == i {
			out = append(out, p.Name)
		}
	}
	return out
}

func (s *snapshot) Len() int {
	return len(s.players)
}
