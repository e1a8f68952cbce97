package api

import (
	"github.com/gofrs/uuid"
)

// An event or purpose of travel
// swagger:model
type Activity struct {
	// swagger:strfmt uuid4
	ID uuid.UUID `json:"id"`

	Name string `json:"name"`

	// first day (yyyy-mm-dd)
	Start string `json:"start"`

	// last day (yyyy-mm-dd)
	End string `json:"end"`

	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}
