package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	DemoID    string
	RunID     string // Empty for scores saved outside a run
	Score     int
	CreatedAt time.Time
}

// SaveScore records a new score for the given demo.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(demoID, runID string, score int) (int64, error) {
	var run any
	if runID != "" {
		run = runID
	}
	result, err := s.db.Exec(
		"INSERT INTO scores (demo_id, run_id, score) VALUES (?, ?, ?)",
		demoID, run, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores for the given demo.
// Results are ordered by score descending.
func (s *Store) TopScores(demoID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryScores(
		`SELECT id, demo_id, run_id, score, created_at
		 FROM scores
		 WHERE demo_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		demoID, limit,
	)
}

// AllScores retrieves all scores for the given demo (no limit).
func (s *Store) AllScores(demoID string) ([]ScoreEntry, error) {
	return s.queryScores(
		`SELECT id, demo_id, run_id, score, created_at
		 FROM scores
		 WHERE demo_id = ?
		 ORDER BY score DESC, id ASC`,
		demoID,
	)
}

func (s *Store) queryScores(query string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var runID sql.NullString
		var createdAt any
		if err := rows.Scan(&e.ID, &e.DemoID, &runID, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.RunID = runID.String
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given demo.
// Returns 0 if no scores exist.
func (s *Store) HighScore(demoID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE demo_id = ?",
		demoID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given demo.
func (s *Store) ClearScores(demoID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE demo_id = ?", demoID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// DemoStats contains aggregated statistics for a demo.
type DemoStats struct {
	DemoID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// GetAllDemoStats retrieves statistics for every demo that has scores.
func (s *Store) GetAllDemoStats() (map[string]*DemoStats, error) {
	rows, err := s.db.Query(
		`SELECT demo_id, COUNT(*), MAX(score), AVG(score), SUM(score), MAX(created_at)
		 FROM scores
		 GROUP BY demo_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get demo stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*DemoStats)
	for rows.Next() {
		var st DemoStats
		var lastPlayed any
		if err := rows.Scan(&st.DemoID, &st.GamesCount, &st.HighScore, &st.AvgScore, &st.TotalScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.DemoID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
