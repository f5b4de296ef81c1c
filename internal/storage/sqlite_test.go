package storage

import (
	"path/filepath"
	"testing"

	"github.com/vkotlar/parlor/internal/progress"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "parlor.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSnapshotRoundtrip(t *testing.T) {
	s := openTestStore(t)

	snap := progress.Snapshot{
		SchemaVersion: progress.SchemaVersion,
		Records: map[string]progress.Record{
			"wordguess": {CurrentLevel: 3, HighestLevel: 5, TotalScore: 740},
			"quiz":      {CurrentLevel: 1, HighestLevel: 1, TotalScore: 0},
		},
	}
	if err := s.Save(snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.SchemaVersion != progress.SchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", got.SchemaVersion, progress.SchemaVersion)
	}
	if len(got.Records) != 2 {
		t.Fatalf("Records = %d entries, want 2", len(got.Records))
	}
	if got.Records["wordguess"] != snap.Records["wordguess"] {
		t.Errorf("wordguess = %+v, want %+v", got.Records["wordguess"], snap.Records["wordguess"])
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := openTestStore(t)

	first := progress.Snapshot{
		SchemaVersion: progress.SchemaVersion,
		Records:       map[string]progress.Record{"g": {CurrentLevel: 1, HighestLevel: 1, TotalScore: 10}},
	}
	second := progress.Snapshot{
		SchemaVersion: progress.SchemaVersion,
		Records:       map[string]progress.Record{"g": {CurrentLevel: 2, HighestLevel: 2, TotalScore: 130}},
	}
	if err := s.Save(first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(second); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Records["g"] != second.Records["g"] {
		t.Errorf("g = %+v, want %+v", got.Records["g"], second.Records["g"])
	}
}

func TestLoadFreshDatabase(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.SchemaVersion != progress.SchemaVersion {
		t.Errorf("fresh SchemaVersion = %d, want current", got.SchemaVersion)
	}
	if len(got.Records) != 0 {
		t.Errorf("fresh Records = %v, want empty", got.Records)
	}
}

func TestLoadReportsForeignVersion(t *testing.T) {
	s := openTestStore(t)

	foreign := progress.Snapshot{
		SchemaVersion: progress.SchemaVersion + 7,
		Records:       map[string]progress.Record{"g": {CurrentLevel: 4, HighestLevel: 4, TotalScore: 99}},
	}
	if err := s.Save(foreign); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// The store reports the foreign version and withholds its records;
	// the progress layer discards such snapshots.
	if got.SchemaVersion != progress.SchemaVersion+7 {
		t.Errorf("SchemaVersion = %d, want %d", got.SchemaVersion, progress.SchemaVersion+7)
	}
	if len(got.Records) != 0 {
		t.Errorf("Records = %v, want none for a foreign version", got.Records)
	}
}

func TestResultsHistory(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.RecordResult("wordguess", 1, 130, "won"); err != nil {
		t.Fatalf("RecordResult: %v", err)
	}
	if _, err := s.RecordResult("wordguess", 2, 40, "lost"); err != nil {
		t.Fatalf("RecordResult: %v", err)
	}
	if _, err := s.RecordResult("quiz", 1, 90, "won"); err != nil {
		t.Fatalf("RecordResult: %v", err)
	}

	results, err := s.RecentResults("wordguess", 10)
	if err != nil {
		t.Fatalf("RecentResults: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	// Most recent first.
	if results[0].Outcome != "lost" || results[0].Level != 2 {
		t.Errorf("latest = %+v, want the lost level-2 run", results[0])
	}

	best, err := s.BestScore("wordguess")
	if err != nil {
		t.Fatalf("BestScore: %v", err)
	}
	if best != 130 {
		t.Errorf("best = %d, want 130", best)
	}
}

func TestBestScoreEmpty(t *testing.T) {
	s := openTestStore(t)

	best, err := s.BestScore("nothing")
	if err != nil {
		t.Fatalf("BestScore: %v", err)
	}
	if best != 0 {
		t.Errorf("best = %d, want 0", best)
	}
}
