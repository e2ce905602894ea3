package models

import "time"

// Gender is the optional enumerated sex of a patient.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Valid reports whether g is one of the known values.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// User represents a patient record.
type User struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	BirthDate *time.Time `json:"birthDate"`
	Gender    *Gender    `json:"gender"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// UserCreate carries the caller-supplied fields of a new user.
type UserCreate struct {
	Username  string
	BirthDate *time.Time
	Gender    *Gender
}

// UserUpdate is a partial update; only Set fields are applied.
type UserUpdate struct {
	Username  Optional[string]
	BirthDate Optional[time.Time]
	Gender    Optional[Gender]
}

// Apply copies the present fields of u onto user.
func (u UserUpdate) Apply(user *User) {
	if u.Username.Set && !u.Username.Null {
		user.Username = u.Username.Value
	}
	if u.BirthDate.Set {
		user.BirthDate = u.BirthDate.Ptr()
	}
	if u.Gender.Set {
		user.Gender = u.Gender.Ptr()
	}
}
