package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/opencode-ai/macaccent/internal/models"
)

// History repository errors.
var (
	ErrHistoryNotFound = errors.New("history entry not found")
	ErrInvalidHistory  = errors.New("invalid history entry")
)

// timestampFormat is fixed width so stored values sort lexically.
const timestampFormat = "2006-01-02T15:04:05.000000000Z07:00"

// HistoryRepository persists applied colour changes.
type HistoryRepository struct {
	db *DB
}

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(db *DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Create stores a history entry, assigning an ID and timestamp when unset.
func (r *HistoryRepository) Create(ctx context.Context, entry *models.HistoryEntry) error {
	if entry == nil || entry.Target == "" || entry.Name == "" || entry.Policy == "" {
		return ErrInvalidHistory
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.AppliedAt.IsZero() {
		entry.AppliedAt = time.Now().UTC()
	} else {
		entry.AppliedAt = entry.AppliedAt.UTC()
	}

	var inputsJSON *string
	if len(entry.Inputs) > 0 {
		data, err := json.Marshal(entry.Inputs)
		if err != nil {
			return fmt.Errorf("failed to marshal inputs: %w", err)
		}
		s := string(data)
		inputsJSON = &s
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO history (
			id, applied_at, target, color_key, color_name, policy, inputs_json
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		entry.ID,
		entry.AppliedAt.Format(timestampFormat),
		string(entry.Target),
		entry.Key,
		entry.Name,
		string(entry.Policy),
		inputsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}
	return nil
}

// Get retrieves a history entry by ID.
func (r *HistoryRepository) Get(ctx context.Context, id string) (*models.HistoryEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, applied_at, target, color_key, color_name, policy, inputs_json
		FROM history WHERE id = ?
	`, id)

	entry, err := scanHistory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHistoryNotFound
	}
	return entry, err
}

// List returns up to limit entries, newest first.
func (r *HistoryRepository) List(ctx context.Context, limit int) ([]*models.HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, applied_at, target, color_key, color_name, policy, inputs_json
		FROM history
		ORDER BY applied_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []*models.HistoryEntry
	for rows.Next() {
		entry, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}
	return entries, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHistory(row rowScanner) (*models.HistoryEntry, error) {
	var (
		entry      models.HistoryEntry
		appliedAt  string
		target     string
		policy     string
		inputsJSON sql.NullString
	)
	if err := row.Scan(&entry.ID, &appliedAt, &target, &entry.Key, &entry.Name, &policy, &inputsJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan history entry: %w", err)
	}

	ts, err := time.Parse(timestampFormat, appliedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid applied_at %q: %w", appliedAt, err)
	}
	entry.AppliedAt = ts
	entry.Target = models.Target(target)
	entry.Policy = models.Policy(policy)

	if inputsJSON.Valid && inputsJSON.String != "" {
		if err := json.Unmarshal([]byte(inputsJSON.String), &entry.Inputs); err != nil {
			return nil, fmt.Errorf("invalid inputs_json: %w", err)
		}
	}
	return &entry, nil
}
