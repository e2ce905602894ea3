package handlers

import (
	"strings"

	"github.com/isdelr/medapi/internal/models"
)

type createUserPayload struct {
	Username  string            `json:"username" validate:"required"`
	BirthDate *models.Timestamp `json:"birthDate"`
	Gender    *models.Gender    `json:"gender" validate:"omitempty,oneof=male female"`
}

func (p *createUserPayload) check() []fieldError {
	if p.Username != "" && strings.TrimSpace(p.Username) == "" {
		return []fieldError{{Field: "username", Message: "must not be blank"}}
	}
	return nil
}

func (p *createUserPayload) toModel() models.UserCreate {
	in := models.UserCreate{Username: p.Username, Gender: p.Gender}
	if p.BirthDate != nil {
		in.BirthDate = &p.BirthDate.Time
	}
	return in
}

// updateUserPayload only touches the keys present in the request body.
type updateUserPayload struct {
	Username  models.Optional[string]           `json:"username"`
	BirthDate models.Optional[models.Timestamp] `json:"birthDate"`
	Gender    models.Optional[models.Gender]    `json:"gender"`
}

func (p *updateUserPayload) check() []fieldError {
	var problems []fieldError
	if p.Username.Set && (p.Username.Null || strings.TrimSpace(p.Username.Value) == "") {
		problems = append(problems, fieldError{Field: "username", Message: "must not be null or blank"})
	}
	if p.Gender.Set && !p.Gender.Null && !p.Gender.Value.Valid() {
		problems = append(problems, fieldError{Field: "gender", Message: "must be one of: male female"})
	}
	return problems
}

func (p *updateUserPayload) toModel() models.UserUpdate {
	return models.UserUpdate{Username: p.Username, BirthDate: models.TimeOptional(p.BirthDate), Gender: p.Gender}
}

type createLabResultPayload struct {
	UserID      string           `json:"user_id" validate:"required"`
	TestName    string           `json:"test_name" validate:"required"`
	TestDate    models.Timestamp `json:"test_date"`
	ResultValue string           `json:"result_value" validate:"required"`
	NormalRange *string          `json:"normal_range"`
	Unit        *string          `json:"unit"`
	Notes       *string          `json:"notes"`
}

func (p *createLabResultPayload) check() []fieldError {
	if p.TestDate.IsZero() {
		return []fieldError{{Field: "test_date", Message: "field required"}}
	}
	return nil
}

func (p *createLabResultPayload) toModel() models.LabResultCreate {
	return models.LabResultCreate{
		UserID:      p.UserID,
		TestName:    p.TestName,
		TestDate:    p.TestDate.Time,
		ResultValue: p.ResultValue,
		NormalRange: p.NormalRange,
		Unit:        p.Unit,
		Notes:       p.Notes,
	}
}

// updateLabResultPayload only touches the keys present in the request body.
type updateLabResultPayload struct {
	TestName    models.Optional[string]           `json:"test_name"`
	TestDate    models.Optional[models.Timestamp] `json:"test_date"`
	ResultValue models.Optional[string]           `json:"result_value"`
	NormalRange models.Optional[string]           `json:"normal_range"`
	Unit        models.Optional[string]           `json:"unit"`
	Notes       models.Optional[string]           `json:"notes"`
}

func (p *updateLabResultPayload) check() []fieldError {
	var problems []fieldError
	if p.TestName.Set && (p.TestName.Null || p.TestName.Value == "") {
		problems = append(problems, fieldError{Field: "test_name", Message: "must not be null or empty"})
	}
	if p.TestDate.Set && (p.TestDate.Null || p.TestDate.Value.IsZero()) {
		problems = append(problems, fieldError{Field: "test_date", Message: "must not be null"})
	}
	if p.ResultValue.Set && (p.ResultValue.Null || p.ResultValue.Value == "") {
		problems = append(problems, fieldError{Field: "result_value", Message: "must not be null or empty"})
	}
	return problems
}

func (p *updateLabResultPayload) toModel() models.LabResultUpdate {
	return models.LabResultUpdate{
		TestName:    p.TestName,
		TestDate:    models.TimeOptional(p.TestDate),
		ResultValue: p.ResultValue,
		NormalRange: p.NormalRange,
		Unit:        p.Unit,
		Notes:       p.Notes,
	}
}
