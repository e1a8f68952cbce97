package api

import (
	"github.com/gofrs/uuid"
)

type ExpenseType string

const (
	ExpenseTypeRegistration = ExpenseType("Conference Registration")
	ExpenseTypeAirfare      = ExpenseType("Airfare")
	ExpenseTypeLodging      = ExpenseType("Lodging")
	ExpenseTypeGround       = ExpenseType("Ground Transportation")
	ExpenseTypeMileage      = ExpenseType("Mileage")
	ExpenseTypeMeals        = ExpenseType("Meals")
	ExpenseTypeOther        = ExpenseType("Other")
)

// AllExpenseTypes lists the expense types in display order
var AllExpenseTypes = []ExpenseType{
	ExpenseTypeRegistration,
	ExpenseTypeAirfare,
	ExpenseTypeLodging,
	ExpenseTypeGround,
	ExpenseTypeMileage,
	ExpenseTypeMeals,
	ExpenseTypeOther,
}

// swagger:model
type EstimatedExpenses []EstimatedExpense

// A projected cost of a trip
// swagger:model
type EstimatedExpense struct {
	// swagger:strfmt uuid4
	ID uuid.UUID `json:"id"`

	// swagger:strfmt uuid4
	TravelRequestID uuid.UUID `json:"travel_request_id"`

	Type ExpenseType `json:"type"`

	Total Currency `json:"total"`
}

// swagger:model
type EstimatedExpenseInput struct {
	Type ExpenseType `json:"type"`

	Total Currency `json:"total"`
}

// swagger:model
type ActualExpenses []ActualExpense

// A cost paid out for a trip
// swagger:model
type ActualExpense struct {
	// swagger:strfmt uuid4
	ID uuid.UUID `json:"id"`

	// swagger:strfmt uuid4
	TravelRequestID uuid.UUID `json:"travel_request_id"`

	// swagger:strfmt uuid4
	FundID uuid.UUID `json:"fund_id"`

	FundName string `json:"fund_name"`

	Type ExpenseType `json:"type"`

	Total Currency `json:"total"`

	// yyyy-mm-dd
	DatePaid string `json:"date_paid,omitempty"`
}

// swagger:model
type ActualExpenseInput struct {
	// swagger:strfmt uuid4
	FundID uuid.UUID `json:"fund_id"`

	Type ExpenseType `json:"type"`

	Total Currency `json:"total"`

	// yyyy-mm-dd
	DatePaid string `json:"date_paid,omitempty"`
}
