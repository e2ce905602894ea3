package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/isdelr/medapi/internal/database"
	"github.com/isdelr/medapi/internal/models"
)

// LabResultServiceProvider defines the interface for lab result services.
type LabResultServiceProvider interface {
	ListLabResults(ctx context.Context, skip, limit int) ([]models.LabResult, error)
	ListUserLabResults(ctx context.Context, userID string, skip, limit int) (models.LabResultList, error)
	GetLabResultByID(ctx context.Context, id string) (models.LabResult, error)
	CreateLabResult(ctx context.Context, input models.LabResultCreate) (models.LabResult, error)
	UpdateLabResult(ctx context.Context, id string, update models.LabResultUpdate) (models.LabResult, error)
	DeleteLabResult(ctx context.Context, id string) (models.LabResult, error)
}

// LabResultService provides business logic for laboratory results.
type LabResultService struct {
	db    *database.DB
	users UserServiceProvider
}

// NewLabResultService creates a new LabResultService. Owner existence checks
// go through users.
func NewLabResultService(db *database.DB, users UserServiceProvider) *LabResultService {
	return &LabResultService{db: db, users: users}
}

const labResultColumns = `id, user_id, test_name, test_date, result_value,
	normal_range, unit, notes, created_at, updated_at`

func scanLabResult(scanner interface{ Scan(...any) error }) (models.LabResult, error) {
	var result models.LabResult
	var normalRange, unit, notes sql.NullString

	err := scanner.Scan(
		&result.ID, &result.UserID, &result.TestName, &result.TestDate, &result.ResultValue,
		&normalRange, &unit, &notes, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return result, err
	}

	result.NormalRange = stringPtr(normalRange)
	result.Unit = stringPtr(unit)
	result.Notes = stringPtr(notes)
	result.TestDate = result.TestDate.UTC()
	result.CreatedAt = result.CreatedAt.UTC()
	result.UpdatedAt = result.UpdatedAt.UTC()
	return result, nil
}

func (s *LabResultService) query(ctx context.Context, query string, args ...any) ([]models.LabResult, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []models.LabResult{}
	for rows.Next() {
		result, err := scanLabResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

// ListLabResults returns a page of all lab results in creation order.
func (s *LabResultService) ListLabResults(ctx context.Context, skip, limit int) ([]models.LabResult, error) {
	return s.query(ctx,
		"SELECT "+labResultColumns+" FROM lab_results ORDER BY created_at, id LIMIT ? OFFSET ?", limit, skip)
}

// ListUserLabResults returns a page of one user's results plus the number of
// results that user has in total.
func (s *LabResultService) ListUserLabResults(ctx context.Context, userID string, skip, limit int) (models.LabResultList, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return models.LabResultList{}, err
	}

	results, err := s.query(ctx,
		"SELECT "+labResultColumns+" FROM lab_results WHERE user_id = ? ORDER BY created_at, id LIMIT ? OFFSET ?",
		userID, limit, skip)
	if err != nil {
		return models.LabResultList{}, err
	}

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM lab_results WHERE user_id = ?", userID); err != nil {
		return models.LabResultList{}, err
	}

	return models.LabResultList{Results: results, Total: total}, nil
}

// GetLabResultByID retrieves a single lab result by its ID.
func (s *LabResultService) GetLabResultByID(ctx context.Context, id string) (models.LabResult, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+labResultColumns+" FROM lab_results WHERE id = ?", id)
	result, err := scanLabResult(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.LabResult{}, notFound("Lab result with ID %s not found", id)
		}
		return models.LabResult{}, err
	}
	return result, nil
}

// CreateLabResult records a new result for an existing user.
func (s *LabResultService) CreateLabResult(ctx context.Context, input models.LabResultCreate) (models.LabResult, error) {
	if _, err := s.users.GetUserByID(ctx, input.UserID); err != nil {
		return models.LabResult{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return models.LabResult{}, fmt.Errorf("failed to generate id: %w", err)
	}
	ts := now()
	result := models.LabResult{
		ID:          id.String(),
		UserID:      input.UserID,
		TestName:    input.TestName,
		TestDate:    normalize(input.TestDate),
		ResultValue: input.ResultValue,
		NormalRange: input.NormalRange,
		Unit:        input.Unit,
		Notes:       input.Notes,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO lab_results(id, user_id, test_name, test_date, result_value,
		                        normal_range, unit, notes, created_at, updated_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.ID, result.UserID, result.TestName, result.TestDate, result.ResultValue,
		nullString(result.NormalRange), nullString(result.Unit), nullString(result.Notes),
		result.CreatedAt, result.UpdatedAt,
	)
	if err != nil {
		// The owner was deleted between the check and the insert.
		if database.IsForeignKeyViolation(err) {
			return models.LabResult{}, userNotFound(input.UserID)
		}
		return models.LabResult{}, err
	}
	return result, nil
}

// UpdateLabResult applies a partial update to an existing lab result.
func (s *LabResultService) UpdateLabResult(ctx context.Context, id string, update models.LabResultUpdate) (models.LabResult, error) {
	result, err := s.GetLabResultByID(ctx, id)
	if err != nil {
		return models.LabResult{}, err
	}

	if update.TestDate.Set && !update.TestDate.Null {
		update.TestDate.Value = normalize(update.TestDate.Value)
	}
	update.Apply(&result)
	result.UpdatedAt = touch(result.UpdatedAt)

	_, err = s.db.ExecContext(ctx, `
		UPDATE lab_results SET test_name = ?, test_date = ?, result_value = ?,
		                       normal_range = ?, unit = ?, notes = ?, updated_at = ?
		WHERE id = ?`,
		result.TestName, result.TestDate, result.ResultValue,
		nullString(result.NormalRange), nullString(result.Unit), nullString(result.Notes),
		result.UpdatedAt, result.ID,
	)
	if err != nil {
		return models.LabResult{}, err
	}
	return result, nil
}

// DeleteLabResult removes a lab result and returns it as it was.
func (s *LabResultService) DeleteLabResult(ctx context.Context, id string) (models.LabResult, error) {
	result, err := s.GetLabResultByID(ctx, id)
	if err != nil {
		return models.LabResult{}, err
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM lab_results WHERE id = ?", id); err != nil {
		return models.LabResult{}, err
	}
	return result, nil
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
