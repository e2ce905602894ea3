package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/isdelr/medapi/internal/database"
	"github.com/isdelr/medapi/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServices wires both services to a private in-memory SQLite database.
func newTestServices(t *testing.T) (*UserService, *LabResultService, *database.DB) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.New(context.Background(), database.SQLite, fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db))

	users := NewUserService(db)
	return users, NewLabResultService(db, users), db
}

func createUser(t *testing.T, s *UserService, username string) models.User {
	t.Helper()
	user, err := s.CreateUser(context.Background(), models.UserCreate{Username: username})
	require.NoError(t, err)
	return user
}

func createLabResult(t *testing.T, s *LabResultService, userID, testName string) models.LabResult {
	t.Helper()
	result, err := s.CreateLabResult(context.Background(), models.LabResultCreate{
		UserID:      userID,
		TestName:    testName,
		TestDate:    time.Date(2024, 5, 2, 8, 30, 0, 0, time.UTC),
		ResultValue: "normal",
	})
	require.NoError(t, err)
	return result
}

func assertSameTime(t *testing.T, expected, actual time.Time, msgAndArgs ...any) {
	t.Helper()
	assert.WithinDuration(t, expected, actual, 0, msgAndArgs...)
}

func countRows(t *testing.T, db *database.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.GetContext(context.Background(), &n, "SELECT COUNT(*) FROM "+table))
	return n
}
