package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("bounce", "", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("platformer", "", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("bounce", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in descending order: %v", scores)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be parsed")
	}

	other, err := store.TopScores("platformer", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("Expected 1 platformer score, got %d", len(other))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", "", (i+1)*100)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	all, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("Expected 5 scores, got %d", len(all))
	}
}

func TestStoreHighScoreAndClear(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("bounce")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty demo, got %d", high)
	}

	store.SaveScore("bounce", "", 100)
	store.SaveScore("bounce", "", 300)
	store.SaveScore("platformer", "", 40)

	if high, _ = store.HighScore("bounce"); high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}

	if err := store.ClearScores("bounce"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if scores, _ := store.TopScores("bounce", 10); len(scores) != 0 {
		t.Errorf("Expected 0 bounce scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("platformer", 10); len(scores) != 1 {
		t.Error("platformer scores should not be affected by clearing bounce")
	}
}

func TestStoreRuns(t *testing.T) {
	store := openTestStore(t)

	run, err := store.StartRun("bounce", "", 42)
	if err != nil {
		t.Fatalf("StartRun() failed: %v", err)
	}
	if _, err := uuid.Parse(run.ID); err != nil {
		t.Errorf("run ID %q is not a UUID: %v", run.ID, err)
	}
	if run.Session != "local" {
		t.Errorf("Session = %q, expected local", run.Session)
	}

	if _, err := store.SaveScore("bounce", run.ID, 70); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	run.Steps, run.Frames, run.AvgFPS, run.EndReason = 600, 590, 59.5, EndGameOver
	if err := store.FinishRun(run); err != nil {
		t.Fatalf("FinishRun() failed: %v", err)
	}

	got, err := store.RunByID(run.ID)
	if err != nil || got == nil {
		t.Fatalf("RunByID() = %v, %v", got, err)
	}
	if got.Steps != 600 || got.Frames != 590 || got.EndReason != EndGameOver || got.Seed != 42 {
		t.Errorf("RunByID() = %+v", got)
	}
	if got.StartedAt.IsZero() || got.EndedAt.IsZero() {
		t.Error("run timestamps should round-trip")
	}

	scores, _ := store.TopScores("bounce", 1)
	if len(scores) != 1 || scores[0].RunID != run.ID {
		t.Errorf("score should reference its run, got %+v", scores)
	}

	if missing, err := store.RunByID(uuid.NewString()); err != nil || missing != nil {
		t.Errorf("RunByID(unknown) = %v, %v, expected nil, nil", missing, err)
	}
	if err := store.FinishRun(&Run{ID: uuid.NewString()}); err == nil {
		t.Error("FinishRun() of unknown run should fail")
	}
}

func TestStoreTopScoredRuns(t *testing.T) {
	store := openTestStore(t)

	run, err := store.StartRun("bounce", "bob", 7)
	if err != nil {
		t.Fatalf("StartRun() failed: %v", err)
	}
	store.SaveScore("bounce", run.ID, 90)
	store.SaveScore("bounce", "", 40)
	run.Steps, run.AvgFPS, run.EndReason = 1200, 60, EndGameOver
	if err := store.FinishRun(run); err != nil {
		t.Fatalf("FinishRun() failed: %v", err)
	}

	got, err := store.TopScoredRuns("bounce", 10)
	if err != nil {
		t.Fatalf("TopScoredRuns() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("TopScoredRuns() returned %d rows, expected 2", len(got))
	}

	top := got[0]
	if top.Score != 90 || top.Run == nil {
		t.Fatalf("TopScoredRuns()[0] = %+v, expected score 90 with its run", top)
	}
	if top.Run.Steps != 1200 || top.Run.Session != "bob" || top.Run.Status() != EndGameOver {
		t.Errorf("joined run = %+v", top.Run)
	}
	if top.Run.Duration() < 0 {
		t.Errorf("Duration() = %v, expected non-negative", top.Run.Duration())
	}
	if got[1].Score != 40 || got[1].Run != nil {
		t.Errorf("TopScoredRuns()[1] = %+v, expected score 40 without a run", got[1])
	}
}

func TestRunStatus(t *testing.T) {
	tests := []struct {
		name     string
		run      Run
		expected string
	}{
		{"running", Run{}, "running"},
		{"finished", Run{EndReason: EndQuit}, EndQuit},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.run.Status(); got != tc.expected {
				t.Errorf("Status() = %q, expected %q", got, tc.expected)
			}
			if got := tc.run.Duration(); got != 0 {
				t.Errorf("Duration() = %v, expected 0", got)
			}
		})
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for _, demo := range []string{"bounce", "platformer", "bounce"} {
		if _, err := store.StartRun(demo, "alice", 0); err != nil {
			t.Fatalf("StartRun() failed: %v", err)
		}
	}

	all, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 runs, got %d", len(all))
	}

	bounce, _ := store.RecentRuns("bounce", 10)
	if len(bounce) != 2 {
		t.Errorf("Expected 2 bounce runs, got %d", len(bounce))
	}
}

func TestStoreDemoStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("bounce", "", 10)
	store.SaveScore("bounce", "", 30)
	store.SaveScore("platformer", "", 5)

	stats, err := store.GetAllDemoStats()
	if err != nil {
		t.Fatalf("GetAllDemoStats() failed: %v", err)
	}
	b := stats["bounce"]
	if b == nil || b.GamesCount != 2 || b.HighScore != 30 || b.AvgScore != 20 || b.TotalScore != 40 {
		t.Errorf("bounce stats = %+v", b)
	}
	if stats["platformer"] == nil {
		t.Error("platformer stats missing")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
