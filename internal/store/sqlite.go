package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"tasklist/internal/models"
)

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database at dbPath and applies pending migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// ":memory:" databases live per connection.
	db.SetMaxOpenConns(1)

	if err := migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads all tasks ordered by position.
func (s *SQLiteStore) Load(ctx context.Context) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT position, date, time, priority, teg
		FROM tasks ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	byPosition := make(map[int64]int)
	for rows.Next() {
		var (
			position int64
			task     models.Task
		)
		if err := rows.Scan(&position, &task.Date, &task.Time, &task.Priority, &task.Due); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		byPosition[position] = len(tasks)
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	lines, err := s.db.QueryContext(ctx, `
		SELECT position, text FROM task_lines ORDER BY position ASC, line_no ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list task lines: %w", err)
	}
	defer lines.Close()

	for lines.Next() {
		var (
			position int64
			text     string
		)
		if err := lines.Scan(&position, &text); err != nil {
			return nil, fmt.Errorf("failed to scan task line: %w", err)
		}
		i, ok := byPosition[position]
		if !ok {
			return nil, fmt.Errorf("task line references missing task %d", position)
		}
		tasks[i].Lines = append(tasks[i].Lines, text)
	}
	if err := lines.Err(); err != nil {
		return nil, fmt.Errorf("failed to list task lines: %w", err)
	}

	if err := validateAll(tasks); err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	return tasks, nil
}

// Save replaces the stored list with tasks in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, tasks []models.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM task_lines`); err != nil {
		return fmt.Errorf("failed to clear task lines: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}

	taskStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (position, date, time, priority, teg) VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer taskStmt.Close()

	lineStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO task_lines (position, line_no, text) VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer lineStmt.Close()

	for i, task := range tasks {
		position := i + 1
		if _, err := taskStmt.ExecContext(ctx, position, task.Date, task.Time, string(task.Priority), string(task.Due)); err != nil {
			return fmt.Errorf("failed to save task %d: %w", position, err)
		}
		for j, line := range task.Lines {
			if _, err := lineStmt.ExecContext(ctx, position, j+1, line); err != nil {
				return fmt.Errorf("failed to save task %d line %d: %w", position, j+1, err)
			}
		}
	}

	return tx.Commit()
}
