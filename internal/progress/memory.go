package progress

// MemoryPersister keeps snapshots in memory. It backs tests and acts as a
// stand-in when no database is available.
type MemoryPersister struct {
	snap  Snapshot
	saved bool

	// Saves counts Save calls, for tests asserting write-per-mutation.
	Saves int
}

// Load returns the last saved snapshot, or an empty current-version
// snapshot when nothing was saved yet.
func (m *MemoryPersister) Load() (Snapshot, error) {
	if !m.saved {
		return Snapshot{SchemaVersion: SchemaVersion, Records: map[string]Record{}}, nil
	}
	return m.snap, nil
}

// Save stores the snapshot.
func (m *MemoryPersister) Save(s Snapshot) error {
	cp := Snapshot{SchemaVersion: s.SchemaVersion, Records: make(map[string]Record, len(s.Records))}
	for id, rec := range s.Records {
		cp.Records[id] = rec
	}
	m.snap = cp
	m.saved = true
	m.Saves++
	return nil
}
