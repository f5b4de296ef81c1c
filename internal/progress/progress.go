// Package progress tracks per-game progress records: the level the player
// is on, the highest level ever reached, and the cumulative score ledger.
// The in-memory store is authoritative for the running process; every
// mutation is snapshotted through an injected persistence port, and a
// failed write is a warning, never a crash.
package progress

// SchemaVersion identifies the snapshot layout. A persisted snapshot with a
// different version is discarded and reinitialized: the store is a cache of
// progress, not a source of truth that must migrate.
const SchemaVersion = 1

// Record is the persisted tuple for one game type.
// HighestLevel never decreases and TotalScore only grows.
type Record struct {
	CurrentLevel int
	HighestLevel int
	TotalScore   int
}

// DefaultRecord is the record created at first access for a game type.
func DefaultRecord() Record {
	return Record{CurrentLevel: 1, HighestLevel: 1, TotalScore: 0}
}

// Snapshot is the wholesale persisted state: every game's record plus the
// schema version it was written with.
type Snapshot struct {
	SchemaVersion int
	Records       map[string]Record
}

// Persister is the durable-storage port for progress snapshots.
// Implementations snapshot the whole store on Save; partial writes are
// not part of the contract.
type Persister interface {
	Load() (Snapshot, error)
	Save(Snapshot) error
}
