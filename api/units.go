package api

import (
	"time"

	"github.com/gofrs/uuid"
)

type UnitType string

const (
	UnitTypeLibrary           = UnitType("Library")
	UnitTypeExecutiveDivision = UnitType("Executive Division")
	UnitTypeManagerialUnit    = UnitType("Managerial Unit")
	UnitTypeTeam              = UnitType("Team")
)

// AllUnitTypes lists the unit types from the top of the hierarchy down
var AllUnitTypes = []UnitType{UnitTypeLibrary, UnitTypeExecutiveDivision, UnitTypeManagerialUnit, UnitTypeTeam}

// swagger:model
type Units []Unit

// A unit in the organizational hierarchy
// swagger:model
type Unit struct {
	// unique ID
	//
	// swagger:strfmt uuid4
	ID uuid.UUID `json:"id"`

	Name string `json:"name"`

	// unit type: 'Library', 'Executive Division', 'Managerial Unit', or 'Team'
	Type UnitType `json:"type"`

	// employee ID of the unit manager
	//
	// swagger:strfmt uuid4
	ManagerID *uuid.UUID `json:"manager_id,omitempty"`

	// name of the unit manager
	ManagerName string `json:"manager_name,omitempty"`

	// swagger:strfmt uuid4
	ParentUnitID *uuid.UUID `json:"parent_unit_id,omitempty"`

	// number of employees directly in this unit
	EmployeeCount int `json:"employee_count"`

	// immediate children of this unit
	Subunits []UnitSummary `json:"subunits"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UnitSummary identifies a unit without its relations
// swagger:model
type UnitSummary struct {
	// swagger:strfmt uuid4
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Type UnitType  `json:"type"`
}
