package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run end reasons.
const (
	EndQuit     = "quit"
	EndGameOver = "game_over"
	EndError    = "error"
)

// Run is one play session of a demo.
type Run struct {
	ID        string
	DemoID    string
	Session   string // "local" or the SSH user
	Seed      int64
	Steps     uint64
	Frames    uint64
	AvgFPS    float64
	EndReason string
	StartedAt time.Time
	EndedAt   time.Time
}

// Duration is the wall-clock length of a finished run, zero while running.
func (r Run) Duration() time.Duration {
	if r.EndedAt.IsZero() || r.StartedAt.IsZero() {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}

// Status is the end reason, or "running" for an unfinished run.
func (r Run) Status() string {
	if r.EndReason == "" {
		return "running"
	}
	return r.EndReason
}

// ScoredRun is a score joined with the run that produced it.
// Run is nil for scores saved outside a run or whose run is gone.
type ScoredRun struct {
	ScoreEntry
	Run *Run
}

// StartRun records the start of a run and returns it with a fresh ID.
func (s *Store) StartRun(demoID, session string, seed int64) (*Run, error) {
	if session == "" {
		session = "local"
	}
	run := &Run{
		ID:        uuid.NewString(),
		DemoID:    demoID,
		Session:   session,
		Seed:      seed,
		StartedAt: time.Now().UTC(),
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, demo_id, session, seed, started_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.DemoID, run.Session, run.Seed, run.StartedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot start run: %w", err)
	}
	return run, nil
}

// FinishRun stores the final counters of a run.
func (s *Store) FinishRun(run *Run) error {
	if run.EndedAt.IsZero() {
		run.EndedAt = time.Now().UTC()
	}
	res, err := s.db.Exec(
		`UPDATE runs SET steps = ?, frames = ?, avg_fps = ?, end_reason = ?, ended_at = ?
		 WHERE run_id = ?`,
		int64(run.Steps), int64(run.Frames), run.AvgFPS, run.EndReason, run.EndedAt.Format(time.RFC3339Nano), run.ID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: cannot finish run %s: not found", run.ID)
	}
	return nil
}

// RunByID retrieves a run. Returns nil if it does not exist.
func (s *Store) RunByID(id string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT run_id, demo_id, session, seed, steps, frames, avg_fps, end_reason, started_at, ended_at
		 FROM runs WHERE run_id = ?`,
		id,
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return run, nil
}

// RecentRuns retrieves the most recent runs, optionally for one demo.
func (s *Store) RecentRuns(demoID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT run_id, demo_id, session, seed, steps, frames, avg_fps, end_reason, started_at, ended_at
		 FROM runs
		 WHERE ? = '' OR demo_id = ?
		 ORDER BY started_at DESC
		 LIMIT ?`,
		demoID, demoID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var run Run
	var steps, frames int64
	var endReason sql.NullString
	var startedAt, endedAt any
	if err := sc.Scan(&run.ID, &run.DemoID, &run.Session, &run.Seed, &steps, &frames,
		&run.AvgFPS, &endReason, &startedAt, &endedAt); err != nil {
		return nil, err
	}
	run.Steps = uint64(steps)
	run.Frames = uint64(frames)
	run.EndReason = endReason.String
	run.StartedAt = parseTime(startedAt)
	run.EndedAt = parseTime(endedAt)
	return &run, nil
}

// TopScoredRuns retrieves the top N scores for a demo with their runs.
func (s *Store) TopScoredRuns(demoID string, limit int) ([]ScoredRun, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT s.id, s.demo_id, s.run_id, s.score, s.created_at,
		        r.run_id, r.demo_id, r.session, r.seed, r.steps, r.frames, r.avg_fps,
		        r.end_reason, r.started_at, r.ended_at
		 FROM scores s
		 LEFT JOIN runs r ON r.run_id = s.run_id
		 WHERE s.demo_id = ?
		 ORDER BY s.score DESC, s.id ASC
		 LIMIT ?`,
		demoID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scored runs: %w", err)
	}
	defer rows.Close()

	var out []ScoredRun
	for rows.Next() {
		var sr ScoredRun
		var scoreRun, runID, runDemo, session, endReason sql.NullString
		var seed, steps, frames sql.NullInt64
		var avgFPS sql.NullFloat64
		var createdAt, startedAt, endedAt any
		if err := rows.Scan(&sr.ID, &sr.DemoID, &scoreRun, &sr.Score, &createdAt,
			&runID, &runDemo, &session, &seed, &steps, &frames, &avgFPS,
			&endReason, &startedAt, &endedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sr.RunID = scoreRun.String
		sr.CreatedAt = parseTime(createdAt)
		if runID.Valid {
			sr.Run = &Run{
				ID:        runID.String,
				DemoID:    runDemo.String,
				Session:   session.String,
				Seed:      seed.Int64,
				Steps:     uint64(steps.Int64),
				Frames:    uint64(frames.Int64),
				AvgFPS:    avgFPS.Float64,
				EndReason: endReason.String,
				StartedAt: parseTime(startedAt),
				EndedAt:   parseTime(endedAt),
			}
		}
		out = append(out, sr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
