package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/isdelr/medapi/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreateLabResult_UnknownUser(t *testing.T) {
	_, results, db := newTestServices(t)

	_, err := results.CreateLabResult(context.Background(), models.LabResultCreate{
		UserID:      "missing",
		TestName:    "CBC",
		TestDate:    time.Now(),
		ResultValue: "ok",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "User with ID missing not found", err.Error())
	assert.Zero(t, countRows(t, db, "lab_results"))
}

func TestCreateLabResult_RoundTrip(t *testing.T) {
	users, results, _ := newTestServices(t)
	ctx := context.Background()
	alice := createUser(t, users, "alice")

	testDate := time.Date(2024, 2, 10, 7, 45, 0, 0, time.FixedZone("CET", 3600))
	created, err := results.CreateLabResult(ctx, models.LabResultCreate{
		UserID:      alice.ID,
		TestName:    "Glucose",
		TestDate:    testDate,
		ResultValue: "5.4",
		NormalRange: strPtr("3.9-5.6"),
		Unit:        strPtr("mmol/L"),
	})
	require.NoError(t, err)

	got, err := results.GetLabResultByID(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, alice.ID, got.UserID)
	assert.Equal(t, "Glucose", got.TestName)
	assertSameTime(t, testDate, got.TestDate)
	assert.Equal(t, "5.4", got.ResultValue)
	assert.Equal(t, strPtr("3.9-5.6"), got.NormalRange)
	assert.Equal(t, strPtr("mmol/L"), got.Unit)
	assert.Nil(t, got.Notes)
	assertSameTime(t, created.CreatedAt, got.CreatedAt)
}

func TestUpdateLabResult_OnlyNotes(t *testing.T) {
	users, results, _ := newTestServices(t)
	ctx := context.Background()
	alice := createUser(t, users, "alice")

	created, err := results.CreateLabResult(ctx, models.LabResultCreate{
		UserID:      alice.ID,
		TestName:    "Hemoglobin",
		TestDate:    time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		ResultValue: "13.1",
		NormalRange: strPtr("12-16"),
		Unit:        strPtr("g/dL"),
	})
	require.NoError(t, err)

	updated, err := results.UpdateLabResult(ctx, created.ID, models.LabResultUpdate{Notes: models.Some("x")})
	require.NoError(t, err)

	got, err := results.GetLabResultByID(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, strPtr("x"), got.Notes)
	assert.Equal(t, created.TestName, got.TestName)
	assertSameTime(t, created.TestDate, got.TestDate)
	assert.Equal(t, created.ResultValue, got.ResultValue)
	assert.Equal(t, created.NormalRange, got.NormalRange)
	assert.Equal(t, created.Unit, got.Unit)
	assertSameTime(t, created.CreatedAt, got.CreatedAt)
	assert.True(t, got.UpdatedAt.After(created.UpdatedAt))
	assertSameTime(t, updated.UpdatedAt, got.UpdatedAt)
}

func TestUpdateLabResult_NotFound(t *testing.T) {
	_, results, _ := newTestServices(t)

	_, err := results.UpdateLabResult(context.Background(), "missing", models.LabResultUpdate{Notes: models.Some("x")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "Lab result with ID missing not found", err.Error())
}

func TestListUserLabResults(t *testing.T) {
	users, results, _ := newTestServices(t)
	ctx := context.Background()
	alice := createUser(t, users, "alice")
	bob := createUser(t, users, "bob")

	a1 := createLabResult(t, results, alice.ID, "CBC")
	a2 := createLabResult(t, results, alice.ID, "TSH")
	createLabResult(t, results, bob.ID, "CBC")

	list, err := results.ListUserLabResults(ctx, alice.ID, 0, 100)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	require.Len(t, list.Results, 2)
	assert.Equal(t, a1.ID, list.Results[0].ID)
	assert.Equal(t, a2.ID, list.Results[1].ID)

	page, err := results.ListUserLabResults(ctx, alice.ID, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total, "total ignores paging")
	require.Len(t, page.Results, 1)
	assert.Equal(t, a2.ID, page.Results[0].ID)

	_, err = results.ListUserLabResults(ctx, "missing", 0, 100)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestListLabResults_Global(t *testing.T) {
	users, results, _ := newTestServices(t)
	ctx := context.Background()
	alice := createUser(t, users, "alice")
	bob := createUser(t, users, "bob")
	createLabResult(t, results, alice.ID, "CBC")
	createLabResult(t, results, bob.ID, "CBC")
	createLabResult(t, results, bob.ID, "TSH")

	all, err := results.ListLabResults(ctx, 0, 100)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	page, err := results.ListLabResults(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, all[1].ID, page[0].ID)
}

func TestDeleteLabResult(t *testing.T) {
	users, results, _ := newTestServices(t)
	ctx := context.Background()
	alice := createUser(t, users, "alice")
	created := createLabResult(t, results, alice.ID, "CBC")

	deleted, err := results.DeleteLabResult(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Equal(t, "CBC", deleted.TestName)

	_, err = results.GetLabResultByID(ctx, created.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = results.DeleteLabResult(ctx, created.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	// The owner is unaffected.
	_, err = users.GetUserByID(ctx, alice.ID)
	assert.NoError(t, err)
}
