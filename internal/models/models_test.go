package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_Presence(t *testing.T) {
	var body struct {
		Notes  Optional[string] `json:"notes"`
		Unit   Optional[string] `json:"unit"`
		Gender Optional[Gender] `json:"gender"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"notes": "fasting", "unit": null}`), &body))

	assert.True(t, body.Notes.Set)
	assert.False(t, body.Notes.Null)
	assert.Equal(t, "fasting", body.Notes.Value)

	assert.True(t, body.Unit.Set)
	assert.True(t, body.Unit.Null)
	assert.Nil(t, body.Unit.Ptr())

	assert.False(t, body.Gender.Set)
}

func TestOptional_TypeMismatch(t *testing.T) {
	var body struct {
		Notes Optional[string] `json:"notes"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"notes": 12}`), &body))
}

func TestLabResultUpdate_Apply(t *testing.T) {
	unit := "g/dL"
	rng := "12-16"
	original := LabResult{
		TestName:    "Hemoglobin",
		TestDate:    time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		ResultValue: "13.1",
		NormalRange: &rng,
		Unit:        &unit,
	}

	got := original
	LabResultUpdate{Notes: Some("x")}.Apply(&got)

	require.NotNil(t, got.Notes)
	assert.Equal(t, "x", *got.Notes)
	assert.Equal(t, original.TestName, got.TestName)
	assert.Equal(t, original.TestDate, got.TestDate)
	assert.Equal(t, original.ResultValue, got.ResultValue)
	assert.Equal(t, original.NormalRange, got.NormalRange)
	assert.Equal(t, original.Unit, got.Unit)

	LabResultUpdate{Unit: Null[string]()}.Apply(&got)
	assert.Nil(t, got.Unit)
}

func TestUserUpdate_Apply(t *testing.T) {
	female := GenderFemale
	user := User{Username: "alice", Gender: &female}

	UserUpdate{Username: Some("alice2")}.Apply(&user)
	assert.Equal(t, "alice2", user.Username)
	require.NotNil(t, user.Gender)
	assert.Equal(t, GenderFemale, *user.Gender)

	UserUpdate{Gender: Null[Gender]()}.Apply(&user)
	assert.Nil(t, user.Gender)
}

func TestGender_Valid(t *testing.T) {
	assert.True(t, GenderMale.Valid())
	assert.True(t, GenderFemale.Valid())
	assert.False(t, Gender("other").Valid())
}
