package api

import (
	"github.com/gofrs/uuid"
)

// swagger:model
type Employees []Employee

// swagger:model
type Employee struct {
	// unique ID
	//
	// swagger:strfmt uuid4
	ID uuid.UUID `json:"id"`

	// staff identifier from the HR system
	UID string `json:"uid"`

	// full name
	Name string `json:"name"`

	Email string `json:"email"`

	// swagger:strfmt uuid4
	UnitID uuid.UUID `json:"unit_id"`

	UnitName string `json:"unit_name"`

	// swagger:strfmt uuid4
	SupervisorID *uuid.UUID `json:"supervisor_id,omitempty"`

	// additional professional development allocation beyond the standard amount
	ExtraAllocation Currency `json:"extra_allocation"`

	// date (yyyy-mm-dd) after which the extra allocation no longer applies
	AllocationExpireDate string `json:"allocation_expire_date,omitempty"`

	Active bool `json:"active"`
}
