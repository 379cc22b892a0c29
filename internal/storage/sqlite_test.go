package storage

import (
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenEmpty(t *testing.T) {
	store := openTestStore(t)

	rounds, err := store.RecentRounds("", 10)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(rounds) != 0 {
		t.Errorf("Expected empty journal, got %d rounds", len(rounds))
	}
}

func TestStoresAreIndependent(t *testing.T) {
	a := openTestStore(t)
	b := openTestStore(t)

	if _, err := a.RecordRound(Round{Mode: "classic", Score: 10}); err != nil {
		t.Fatalf("RecordRound() failed: %v", err)
	}

	rounds, err := b.RecentRounds("", 10)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(rounds) != 0 {
		t.Errorf("Expected second journal to be empty, got %d rounds", len(rounds))
	}
}

func TestStoreRecordAndRecent(t *testing.T) {
	store := openTestStore(t)
	ended := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	in := []Round{
		{Mode: "classic", Score: 12, Hits: 12, Elapsed: 15 * time.Second, Reason: "time up", EndedAt: ended},
		{Mode: "strict", Score: 7, Hits: 9, Misses: 2, Elapsed: 9 * time.Second, Reason: "board full", EndedAt: ended},
		{Mode: "classic", Score: 50, Hits: 50, Elapsed: 14250 * time.Millisecond, Reason: "target reached", Won: true, EndedAt: ended},
	}
	for _, r := range in {
		if _, err := store.RecordRound(r); err != nil {
			t.Fatalf("RecordRound() failed: %v", err)
		}
	}

	rounds, err := store.RecentRounds("classic", 10)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(rounds) != 2 {
		t.Fatalf("Expected 2 classic rounds, got %d", len(rounds))
	}

	// Newest first
	got := rounds[0]
	if got.Score != 50 || !got.Won || got.Elapsed != 14250*time.Millisecond || got.Reason != "target reached" {
		t.Errorf("Unexpected newest round: %+v", got)
	}
	if !got.EndedAt.Equal(ended) {
		t.Errorf("EndedAt = %v, expected %v", got.EndedAt, ended)
	}

	all, err := store.RecentRounds("", 10)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 rounds across modes, got %d", len(all))
	}
	if all[1].Misses != 2 {
		t.Errorf("Expected misses to round-trip, got %+v", all[1])
	}
}

func TestStoreTopRounds(t *testing.T) {
	store := openTestStore(t)

	store.RecordRound(Round{Mode: "classic", Score: 30, Elapsed: 15 * time.Second})
	store.RecordRound(Round{Mode: "classic", Score: 50, Elapsed: 20 * time.Second, Won: true})
	store.RecordRound(Round{Mode: "classic", Score: 50, Elapsed: 17 * time.Second, Won: true})
	store.RecordRound(Round{Mode: "classic", Score: 10, Elapsed: 5 * time.Second})

	top, err := store.TopRounds("classic", 3)
	if err != nil {
		t.Fatalf("TopRounds() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 rounds with limit, got %d", len(top))
	}

	// Equal scores are ordered by time
	if top[0].Elapsed != 17*time.Second || top[1].Elapsed != 20*time.Second || top[2].Score != 30 {
		t.Errorf("Rounds not in expected order: %+v", top)
	}
}

func TestStoreModeStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.ModeStats("classic")
	if err != nil {
		t.Fatalf("ModeStats() failed: %v", err)
	}
	if stats.Rounds != 0 || stats.BestTime != 0 {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	store.RecordRound(Round{Mode: "classic", Score: 20, Elapsed: 15 * time.Second})
	store.RecordRound(Round{Mode: "classic", Score: 50, Elapsed: 18 * time.Second, Won: true})
	store.RecordRound(Round{Mode: "classic", Score: 50, Elapsed: 16 * time.Second, Won: true})
	store.RecordRound(Round{Mode: "strict", Score: 50, Elapsed: 11 * time.Second, Won: true})

	stats, err = store.ModeStats("classic")
	if err != nil {
		t.Fatalf("ModeStats() failed: %v", err)
	}
	if stats.Rounds != 3 || stats.Wins != 2 || stats.BestScore != 50 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 40 {
		t.Errorf("AvgScore = %v, expected 40", stats.AvgScore)
	}
	if stats.BestTime != 16*time.Second {
		t.Errorf("BestTime = %v, expected 16s", stats.BestTime)
	}

	all, err := store.ModeStats("")
	if err != nil {
		t.Fatalf("ModeStats() failed: %v", err)
	}
	if all.Rounds != 4 || all.BestTime != 11*time.Second {
		t.Errorf("Unexpected all-mode stats: %+v", all)
	}
}

func TestStoreClearRounds(t *testing.T) {
	store := openTestStore(t)

	store.RecordRound(Round{Mode: "classic", Score: 1})
	store.RecordRound(Round{Mode: "classic", Score: 2})
	store.RecordRound(Round{Mode: "steady", Score: 3})

	if err := store.ClearRounds("classic"); err != nil {
		t.Fatalf("ClearRounds() failed: %v", err)
	}

	classic, _ := store.RecentRounds("classic", 10)
	if len(classic) != 0 {
		t.Errorf("Expected 0 classic rounds after clear, got %d", len(classic))
	}

	steady, _ := store.RecentRounds("steady", 10)
	if len(steady) != 1 {
		t.Errorf("Steady rounds should not be affected by clearing classic")
	}
}
