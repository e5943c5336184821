package onboarding

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"studio/internal/adapters/storage"
	domain "studio/internal/domain/onboarding"
)

const submissionColumns = "id, role, name, email, payload, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new onboarding submission store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanSubmission(scan func(dest ...any) error) (domain.Submission, error) {
	var entity domain.Submission
	var createdAt string
	err := scan(
		&entity.ID,
		&entity.Role,
		&entity.Name,
		&entity.Email,
		&entity.Payload,
		&createdAt,
	)
	if err != nil {
		return domain.Submission{}, err
	}
	entity.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return entity, nil
}

// GetByID retrieves a Submission by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Submission, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+submissionColumns+" FROM onboarding_submission WHERE id = ?", id)
	entity, err := scanSubmission(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Submission{}, fmt.Errorf("submission not found: %w", err)
	}
	return entity, err
}

// Save persists a Submission. Submissions are append-only; a duplicate ID is an error.
// PRE: entity came from a completed wizard run
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Submission) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO onboarding_submission ("+submissionColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		entity.ID,
		entity.Role,
		entity.Name,
		entity.Email,
		entity.Payload,
		entity.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}

// List retrieves all submissions, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Submission, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+submissionColumns+" FROM onboarding_submission ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Submission
	for rows.Next() {
		entity, err := scanSubmission(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
