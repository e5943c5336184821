package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"studio/internal/adapters/storage"
	domain "studio/internal/domain/appointment"
)

const appointmentColumns = "id, client_name, category, date, start_time, duration_minutes, price_cents, status, notes, location"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new appointment store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanAppointment(scan func(dest ...any) error) (domain.Appointment, error) {
	var entity domain.Appointment
	err := scan(
		&entity.ID,
		&entity.ClientName,
		&entity.Category,
		&entity.Date,
		&entity.StartTime,
		&entity.DurationMinutes,
		&entity.PriceCents,
		&entity.Status,
		&entity.Notes,
		&entity.Location,
	)
	return entity, err
}

// GetByID retrieves an Appointment by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Appointment, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+appointmentColumns+" FROM appointment WHERE id = ?", id)
	entity, err := scanAppointment(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Appointment{}, fmt.Errorf("appointment not found: %w", err)
	}
	return entity, err
}

// Save persists an Appointment to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Appointment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Upsert implementation
	fields := []string{"id", "client_name", "category", "date", "start_time", "duration_minutes", "price_cents", "status", "notes", "location"}
	placeholders := []string{"?", "?", "?", "?", "?", "?", "?", "?", "?", "?"}
	updates := []string{"client_name=excluded.client_name", "category=excluded.category", "date=excluded.date", "start_time=excluded.start_time", "duration_minutes=excluded.duration_minutes", "price_cents=excluded.price_cents", "status=excluded.status", "notes=excluded.notes", "location=excluded.location"}

	query := fmt.Sprintf(
		"INSERT INTO appointment (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.ClientName,
		entity.Category,
		entity.Date,
		entity.StartTime,
		entity.DurationMinutes,
		entity.PriceCents,
		entity.Status,
		entity.Notes,
		entity.Location,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes an Appointment from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM appointment WHERE id = ?", id)
	return err
}

// List retrieves all appointments in chronological order. The schedule views
// work off this full snapshot.
// POST: Returns entities ordered by date then start time
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Appointment, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+appointmentColumns+" FROM appointment ORDER BY date, start_time")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Appointment
	for rows.Next() {
		entity, err := scanAppointment(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// listWhereClause builds the WHERE clause and args for filtered queries.
func listWhereClause(filter ListFilter) (string, []any) {
	where := " WHERE 1=1"
	var args []any

	if filter.Category != "" {
		where += " AND category = ?"
		args = append(args, filter.Category)
	}
	if filter.Status != "" {
		where += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Search != "" {
		where += " AND client_name LIKE ?"
		args = append(args, "%"+filter.Search+"%")
	}
	return where, args
}

// CountFiltered returns the total number of appointments matching the filter.
// PRE: filter has valid parameters
// POST: Returns count >= 0
func (s *SQLiteStore) CountFiltered(ctx context.Context, filter ListFilter) (int, error) {
	where, args := listWhereClause(filter)
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM appointment"+where, args...).Scan(&count)
	return count, err
}

// ListFiltered retrieves a page of appointments for the admin table,
// newest day first.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) ListFiltered(ctx context.Context, filter ListFilter) ([]domain.Appointment, error) {
	where, args := listWhereClause(filter)
	query := "SELECT " + appointmentColumns + " FROM appointment" + where + " ORDER BY date DESC, start_time"

	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Appointment
	for rows.Next() {
		entity, err := scanAppointment(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
