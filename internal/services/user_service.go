package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/medapi/internal/database"
	"github.com/isdelr/medapi/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	ListUsers(ctx context.Context, skip, limit int) ([]models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
	CreateUser(ctx context.Context, input models.UserCreate) (models.User, error)
	UpdateUser(ctx context.Context, id string, update models.UserUpdate) (models.User, error)
	DeleteUser(ctx context.Context, id string) (models.User, error)
}

// UserService provides business logic for patient records.
type UserService struct {
	db *database.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *database.DB) *UserService {
	return &UserService{db: db}
}

const userColumns = "id, username, birth_date, gender, created_at, updated_at"

// scanUser is a helper to scan a user from a row or rows object.
func scanUser(scanner interface{ Scan(...any) error }) (models.User, error) {
	var user models.User
	var birthDate sql.NullTime
	var gender sql.NullString

	if err := scanner.Scan(&user.ID, &user.Username, &birthDate, &gender, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return user, err
	}

	if birthDate.Valid {
		t := birthDate.Time.UTC()
		user.BirthDate = &t
	}
	if gender.Valid {
		g := models.Gender(gender.String)
		user.Gender = &g
	}
	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()
	return user, nil
}

// ListUsers returns a page of users in creation order.
func (s *UserService) ListUsers(ctx context.Context, skip, limit int) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at, id LIMIT ? OFFSET ?", limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, userNotFound(id)
		}
		return models.User{}, err
	}
	return user, nil
}

// usernameTaken reports whether a user other than exceptID holds username.
func (s *UserService) usernameTaken(ctx context.Context, username, exceptID string) (bool, error) {
	var id string
	err := s.db.GetContext(ctx, &id, "SELECT id FROM users WHERE username = ?", username)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return id != exceptID, nil
}

// CreateUser registers a new patient. The username must be unused.
func (s *UserService) CreateUser(ctx context.Context, input models.UserCreate) (models.User, error) {
	taken, err := s.usernameTaken(ctx, input.Username, "")
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, conflict("Username already registered")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return models.User{}, fmt.Errorf("failed to generate id: %w", err)
	}
	ts := now()
	user := models.User{
		ID:        id.String(),
		Username:  input.Username,
		BirthDate: utcPtr(input.BirthDate),
		Gender:    input.Gender,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO users(id, username, birth_date, gender, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?)",
		user.ID, user.Username, nullTime(user.BirthDate), nullGender(user.Gender), user.CreatedAt, user.UpdatedAt)
	if err != nil {
		// The unique index catches a concurrent insert that slipped past the check.
		if database.IsUniqueViolation(err) {
			return models.User{}, conflict("Username already registered")
		}
		return models.User{}, err
	}
	return user, nil
}

// UpdateUser applies a partial update to an existing user.
func (s *UserService) UpdateUser(ctx context.Context, id string, update models.UserUpdate) (models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	if update.Username.Set && !update.Username.Null && update.Username.Value != user.Username {
		taken, err := s.usernameTaken(ctx, update.Username.Value, user.ID)
		if err != nil {
			return models.User{}, err
		}
		if taken {
			return models.User{}, conflict("Username already registered")
		}
	}

	if update.BirthDate.Set && !update.BirthDate.Null {
		update.BirthDate.Value = normalize(update.BirthDate.Value)
	}
	update.Apply(&user)
	user.UpdatedAt = touch(user.UpdatedAt)

	_, err = s.db.ExecContext(ctx,
		"UPDATE users SET username = ?, birth_date = ?, gender = ?, updated_at = ? WHERE id = ?",
		user.Username, nullTime(user.BirthDate), nullGender(user.Gender), user.UpdatedAt, user.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return models.User{}, conflict("Username already registered")
		}
		return models.User{}, err
	}
	return user, nil
}

// DeleteUser removes a user together with all of their lab results and
// returns the user as it was before deletion.
func (s *UserService) DeleteUser(ctx context.Context, id string) (models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := normalize(*t)
	return &u
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullGender(g *models.Gender) sql.NullString {
	if g == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*g), Valid: true}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
