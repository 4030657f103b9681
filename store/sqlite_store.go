package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gaphound/gaphound/models"
	_ "modernc.org/sqlite"
)

// SQLiteResultStore keeps every analysis run in a single SQLite database, one
// row per run, so the full run history of a story survives re-analysis.
type SQLiteResultStore struct {
	db *sql.DB
}

// NewSQLiteResultStore opens (or creates) the database at dbPath.
// Use ":memory:" for an ephemeral store.
func NewSQLiteResultStore(dbPath string) (*SQLiteResultStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &SQLiteResultStore{db: db}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteResultStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS hygiene_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		report_id TEXT NOT NULL,
		story_id TEXT NOT NULL,
		analyzed_at TEXT NOT NULL,
		analyzed INTEGER NOT NULL,
		total_gaps INTEGER NOT NULL,
		blocking_gaps INTEGER NOT NULL,
		result_json TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_hygiene_runs_story ON hygiene_runs(story_id, id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save appends the result as a new run row. Previous runs are never updated
// or deleted.
func (s *SQLiteResultStore) Save(result *models.HygieneResult) error {
	if result.StoryID == "" {
		return fmt.Errorf("result has no story id")
	}
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result for story %s: %w", result.StoryID, err)
	}
	analyzed := 0
	if result.Analyzed {
		analyzed = 1
	}
	_, err = s.db.Exec(
		`INSERT INTO hygiene_runs (report_id, story_id, analyzed_at, analyzed, total_gaps, blocking_gaps, result_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		result.ReportID,
		result.StoryID,
		result.AnalyzedAt.UTC().Format(time.RFC3339Nano),
		analyzed,
		result.TotalGaps,
		result.BlockingGaps,
		string(data),
	)
	if err != nil {
		return fmt.Errorf("insert run for story %s: %w", result.StoryID, err)
	}
	return nil
}

// Latest returns the most recent analyzed run for a story.
func (s *SQLiteResultStore) Latest(storyID string) (*models.HygieneResult, error) {
	var data string
	err := s.db.QueryRow(
		`SELECT result_json FROM hygiene_runs WHERE story_id = ? AND analyzed = 1 ORDER BY id DESC LIMIT 1`,
		storyID,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("story %s: %w", storyID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query latest run for story %s: %w", storyID, err)
	}

	var result models.HygieneResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, fmt.Errorf("decode result for story %s: %w", storyID, err)
	}
	return &result, nil
}

// Stories lists all story ids with at least one stored run.
func (s *SQLiteResultStore) Stories() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT story_id FROM hygiene_runs ORDER BY story_id`)
	if err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan story id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stories: %w", err)
	}
	return ids, nil
}

// RunCount returns how many runs are stored for a story.
func (s *SQLiteResultStore) RunCount(storyID string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM hygiene_runs WHERE story_id = ?`, storyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count runs for story %s: %w", storyID, err)
	}
	return n, nil
}

// Close closes the underlying database.
func (s *SQLiteResultStore) Close() error {
	return s.db.Close()
}
