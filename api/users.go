package api

import (
	"time"

	"github.com/gofrs/uuid"
)

// swagger:model
type Users []User

// app user
// swagger:model
type User struct {
	// unique ID
	//
	// swagger:strfmt uuid4
	ID uuid.UUID `json:"id"`

	// email address
	Email string `json:"email"`

	// first name
	FirstName string `json:"first_name"`

	// last name
	LastName string `json:"last_name"`

	// full name
	Name string `json:"name"`

	// role in the application ('User', 'Reporter', 'Admin')
	AppRole string `json:"app_role"`

	// last login date and time (UTC)
	LastLoginUTC time.Time `json:"last_login_utc"`

	// the user's employee record, if the user is on staff
	//
	// swagger:strfmt uuid4
	EmployeeID *uuid.UUID `json:"employee_id,omitempty"`
}
