package api

import (
	"time"

	"github.com/gofrs/uuid"
)

// swagger:model
type TravelRequests []TravelRequest

// swagger:model
type TravelRequest struct {
	// unique ID
	//
	// swagger:strfmt uuid4
	ID uuid.UUID `json:"id"`

	Traveler Employee `json:"traveler"`
	Activity Activity `json:"activity"`

	// yyyy-mm-dd
	DepartureDate string `json:"departure_date"`

	// yyyy-mm-dd
	ReturnDate string `json:"return_date"`

	// number of days out of the office
	DaysOOO int `json:"days_ooo"`

	// administrative travel is not charged against professional development allocations
	Administrative bool `json:"administrative"`

	Closed bool `json:"closed"`

	Justification string `json:"justification,omitempty"`

	// all required approvals exist
	Approved bool `json:"approved"`

	// the approved amount is greater than zero
	Funded bool `json:"funded"`

	// the activity is outside the home country
	International bool `json:"international"`

	// sum of approval amounts
	AllocationsTotal Currency `json:"allocations_total"`

	// sum of actual expenses
	ExpendituresTotal Currency `json:"expenditures_total"`

	// sum of estimated expenses
	EstimatedTotal Currency `json:"estimated_total"`

	Approvals         Approvals         `json:"approvals"`
	EstimatedExpenses EstimatedExpenses `json:"estimated_expenses"`
	ActualExpenses    ActualExpenses    `json:"actual_expenses"`
	Vacations         Vacations         `json:"vacations"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// swagger:model
type Vacations []Vacation

// Personal days taken during a trip
// swagger:model
type Vacation struct {
	// swagger:strfmt uuid4
	ID uuid.UUID `json:"id"`

	// swagger:strfmt uuid4
	TravelRequestID uuid.UUID `json:"travel_request_id"`

	// yyyy-mm-dd
	Start string `json:"start"`

	// yyyy-mm-dd
	End string `json:"end"`
}

// swagger:model
type VacationInput struct {
	// yyyy-mm-dd
	Start string `json:"start"`

	// yyyy-mm-dd
	End string `json:"end"`
}
