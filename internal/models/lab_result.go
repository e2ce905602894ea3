package models

import "time"

// LabResult is a single laboratory observation belonging to one user.
type LabResult struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	TestName    string    `json:"test_name"`
	TestDate    time.Time `json:"test_date"`
	ResultValue string    `json:"result_value"`
	NormalRange *string   `json:"normal_range"`
	Unit        *string   `json:"unit"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LabResultList is a page of one user's results with the user's total count.
type LabResultList struct {
	Results []LabResult `json:"results"`
	Total   int         `json:"total"`
}

type LabResultCreate struct {
	UserID      string
	TestName    string
	TestDate    time.Time
	ResultValue string
	NormalRange *string
	Unit        *string
	Notes       *string
}

// LabResultUpdate is a partial update; only Set fields are applied.
type LabResultUpdate struct {
	TestName    Optional[string]
	TestDate    Optional[time.Time]
	ResultValue Optional[string]
	NormalRange Optional[string]
	Unit        Optional[string]
	Notes       Optional[string]
}

// Apply copies the present fields of u onto result. Required columns ignore
// an explicit null; callers reject that before getting here.
func (u LabResultUpdate) Apply(result *LabResult) {
	if u.TestName.Set && !u.TestName.Null {
		result.TestName = u.TestName.Value
	}
	if u.TestDate.Set && !u.TestDate.Null {
		result.TestDate = u.TestDate.Value
	}
	if u.ResultValue.Set && !u.ResultValue.Null {
		result.ResultValue = u.ResultValue.Value
	}
	if u.NormalRange.Set {
		result.NormalRange = u.NormalRange.Ptr()
	}
	if u.Unit.Set {
		result.Unit = u.Unit.Ptr()
	}
	if u.Notes.Set {
		result.Notes = u.Notes.Ptr()
	}
}
