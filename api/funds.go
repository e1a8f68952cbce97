package api

import (
	"github.com/gofrs/uuid"
)

// swagger:model
type Funds []Fund

// A source of money for travel
// swagger:model
type Fund struct {
	// unique ID
	//
	// swagger:strfmt uuid4
	ID uuid.UUID `json:"id"`

	// account-costcenter-fund
	Name string `json:"name"`

	Account    string `json:"account"`
	CostCenter string `json:"cost_center"`
	Fund       string `json:"fund"`

	// employee ID of the fund manager
	//
	// swagger:strfmt uuid4
	ManagerID *uuid.UUID `json:"manager_id,omitempty"`

	// swagger:strfmt uuid4
	UnitID *uuid.UUID `json:"unit_id,omitempty"`
}
