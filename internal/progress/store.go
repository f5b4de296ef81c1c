package progress

import (
	"sort"
	"sync"

	"github.com/charmbracelet/log"
)

// Store holds the live progress records for all games. Safe for use from
// multiple sessions; in practice the event loop serializes access, but SSH
// serving runs one loop per connection against a shared store.
type Store struct {
	mu      sync.Mutex
	records map[string]Record
	persist Persister
	logger  *log.Logger
}

// NewStore creates a store backed by p. A nil persister keeps the store
// purely in-memory (used in tests and when the database cannot be opened).
// The previously persisted snapshot is loaded if its schema version
// matches; anything else starts fresh.
func NewStore(p Persister, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{
		records: make(map[string]Record),
		persist: p,
		logger:  logger,
	}
	if p == nil {
		return s
	}
	snap, err := p.Load()
	if err != nil {
		logger.Warn("progress: could not load snapshot, starting fresh", "error", err)
		return s
	}
	if snap.SchemaVersion != SchemaVersion {
		logger.Warn("progress: snapshot schema mismatch, discarding",
			"have", snap.SchemaVersion, "want", SchemaVersion)
		return s
	}
	for id, rec := range snap.Records {
		s.records[id] = rec
	}
	return s
}

// Get returns the record for gameID, creating the default on first access.
func (s *Store) Get(gameID string) Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(gameID)
}

func (s *Store) getLocked(gameID string) Record {
	rec, ok := s.records[gameID]
	if !ok {
		rec = DefaultRecord()
		s.records[gameID] = rec
	}
	return rec
}

// Update replaces the record wholesale and persists. The monotonic
// invariants are enforced here so no caller can shrink the ledger:
// HighestLevel never drops below its previous value or CurrentLevel,
// and TotalScore never decreases.
func (s *Store) Update(gameID string, rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.getLocked(gameID)
	if rec.CurrentLevel < 1 {
		rec.CurrentLevel = 1
	}
	if rec.HighestLevel < rec.CurrentLevel {
		rec.HighestLevel = rec.CurrentLevel
	}
	if rec.HighestLevel < prev.HighestLevel {
		rec.HighestLevel = prev.HighestLevel
	}
	if rec.TotalScore < prev.TotalScore {
		rec.TotalScore = prev.TotalScore
	}
	s.records[gameID] = rec
	s.saveLocked()
}

// Reset sets the record back to defaults. This is the one deliberate
// exception to monotonicity: an explicit reset starts the ledger over.
func (s *Store) Reset(gameID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[gameID] = DefaultRecord()
	s.saveLocked()
}

// IncrementLevel advances CurrentLevel by one, pushing HighestLevel along
// when a new level is reached for the first time.
func (s *Store) IncrementLevel(gameID string) Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.getLocked(gameID)
	rec.CurrentLevel++
	if rec.CurrentLevel > rec.HighestLevel {
		rec.HighestLevel = rec.CurrentLevel
	}
	s.records[gameID] = rec
	s.saveLocked()
	return rec
}

// AddScore adds delta to the cumulative score. Negative deltas are ignored:
// the ledger only grows.
func (s *Store) AddScore(gameID string, delta int) Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.getLocked(gameID)
	if delta > 0 {
		rec.TotalScore += delta
		s.records[gameID] = rec
		s.saveLocked()
	}
	return rec
}

// GameIDs returns the ids of all games with a record, sorted.
func (s *Store) GameIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// saveLocked snapshots the whole store through the persistence port.
// Failures are logged and swallowed; the in-memory state stays
// authoritative and the next mutation retries the full snapshot.
func (s *Store) saveLocked() {
	if s.persist == nil {
		return
	}
	snap := Snapshot{
		SchemaVersion: SchemaVersion,
		Records:       make(map[string]Record, len(s.records)),
	}
	for id, rec := range s.records {
		snap.Records[id] = rec
	}
	if err := s.persist.Save(snap); err != nil {
		s.logger.Warn("progress: could not persist snapshot", "error", err)
	}
}
