package persistence

import "testing"

func TestRecordAndLoad(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	runID, err := db.BeginRun(42, 20, 10, 0.5, 0.998)
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}

	for tick := uint64(0); tick < 3; tick++ {
		err := db.RecordTick(TickStats{
			RunID:          runID,
			Tick:           tick,
			Agents:         100,
			EmptyPositions: 100 - int(tick),
			Density:        0.5,
			Moves:          int(tick) * 7,
		})
		if err != nil {
			t.Fatalf("RecordTick(%d): %v", tick, err)
		}
	}

	run, err := db.LoadRun(runID)
	if err != nil {
		t.Fatalf("LoadRun: %v", err)
	}
	if run.Seed != 42 || run.Width != 20 || run.Height != 10 {
		t.Fatalf("run = %+v, want seed 42, 20x10", run)
	}

	stats, err := db.LoadTickStats(runID)
	if err != nil {
		t.Fatalf("LoadTickStats: %v", err)
	}
	if len(stats) != 3 {
		t.Fatalf("loaded %d ticks, want 3", len(stats))
	}
	for i, s := range stats {
		if s.Tick != uint64(i) {
			t.Fatalf("tick order broken: got %d at index %d", s.Tick, i)
		}
		if s.Moves != i*7 {
			t.Fatalf("tick %d moves = %d, want %d", i, s.Moves, i*7)
		}
	}
}

func TestLoadMissingRun(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	if _, err := db.LoadRun(999); err == nil {
		t.Fatal("LoadRun(999) did not fail")
	}
}
