package models

import (
	"net/http"
	"time"

	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"

	"github.com/silinternational/terra/api"
	"github.com/silinternational/terra/domain"
)

var ValidExpenseTypes = map[api.ExpenseType]struct{}{
	api.ExpenseTypeRegistration: {},
	api.ExpenseTypeAirfare:      {},
	api.ExpenseTypeLodging:      {},
	api.ExpenseTypeGround:       {},
	api.ExpenseTypeMileage:      {},
	api.ExpenseTypeMeals:        {},
	api.ExpenseTypeOther:        {},
}

type EstimatedExpenses []EstimatedExpense

// EstimatedExpense is a projected cost of a trip
type EstimatedExpense struct {
	ID              uuid.UUID       `db:"id"`
	TravelRequestID uuid.UUID       `db:"travel_request_id" validate:"required"`
	Type            api.ExpenseType `db:"type" validate:"expenseType"`
	Total           decimal.Decimal `db:"total"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`

	TravelRequest TravelRequest `belongs_to:"travel_requests" validate:"-"`
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (e *EstimatedExpense) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(e), nil
}

func (e *EstimatedExpense) Create(tx *pop.Connection) error {
	return create(tx, e)
}

func (e *EstimatedExpense) Update(tx *pop.Connection) error {
	return update(tx, e)
}

// Destroy removes the expense, unless its travel request is closed
func (e *EstimatedExpense) Destroy(tx *pop.Connection) error {
	e.LoadTravelRequest(tx, true)
	if err := e.TravelRequest.errIfClosed(); err != nil {
		return err
	}
	return destroy(tx, e)
}

func (e *EstimatedExpense) GetID() uuid.UUID {
	return e.ID
}

func (e *EstimatedExpense) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, e, id)
}

// IsActorAllowedTo allows viewers of the travel request to view the expense. The traveler may change it while
// the request is open. Managers of the request may always change it.
func (e *EstimatedExpense) IsActorAllowedTo(tx *pop.Connection, actor User, perm Permission, sub SubResource, r *http.Request) bool {
	e.LoadTravelRequest(tx, false)
	t := &e.TravelRequest

	if perm == PermissionView {
		return CanView(tx, actor, t)
	}
	return canManageTravelRequest(tx, actor, t) || (!t.Closed && isTraveler(tx, actor, t))
}

func (e *EstimatedExpense) LoadTravelRequest(tx *pop.Connection, reload bool) {
	if e.TravelRequest.ID == uuid.Nil || reload {
		if err := tx.Load(e, "TravelRequest"); err != nil {
			panic("database error loading EstimatedExpense.TravelRequest, " + err.Error())
		}
	}
}

// UpdateFromInput changes the type and total, unless the travel request is closed
func (e *EstimatedExpense) UpdateFromInput(tx *pop.Connection, input api.EstimatedExpenseInput) error {
	e.LoadTravelRequest(tx, true)
	if err := e.TravelRequest.errIfClosed(); err != nil {
		return err
	}
	e.Type = input.Type
	e.Total = input.Total.Decimal
	return e.Update(tx)
}

// TotalDollars renders the total for display, e.g. "$250.00"
func (e *EstimatedExpense) TotalDollars() string {
	return api.FormatDollars(e.Total)
}

func (e *EstimatedExpense) ConvertToAPI() api.EstimatedExpense {
	return api.EstimatedExpense{
		ID:              e.ID,
		TravelRequestID: e.TravelRequestID,
		Type:            e.Type,
		Total:           api.NewCurrency(e.Total),
	}
}

func (es EstimatedExpenses) ConvertToAPI() api.EstimatedExpenses {
	expenses := make(api.EstimatedExpenses, len(es))
	for i := range es {
		expenses[i] = es[i].ConvertToAPI()
	}
	return expenses
}

// Total returns the sum of the expense totals
func (es EstimatedExpenses) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range es {
		total = total.Add(e.Total)
	}
	return total
}

type ActualExpenses []ActualExpense

// ActualExpense is a cost paid out of a fund for a trip
type ActualExpense struct {
	ID              uuid.UUID       `db:"id"`
	TravelRequestID uuid.UUID       `db:"travel_request_id" validate:"required"`
	FundID          uuid.UUID       `db:"fund_id" validate:"required"`
	Type            api.ExpenseType `db:"type" validate:"expenseType"`
	Total           decimal.Decimal `db:"total"`
	DatePaid        nulls.Time      `db:"date_paid"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`

	TravelRequest TravelRequest `belongs_to:"travel_requests" validate:"-"`
	Fund          Fund          `belongs_to:"funds" validate:"-"`
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (e *ActualExpense) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(e), nil
}

func (e *ActualExpense) Create(tx *pop.Connection) error {
	return create(tx, e)
}

func (e *ActualExpense) Update(tx *pop.Connection) error {
	return update(tx, e)
}

func (e *ActualExpense) Destroy(tx *pop.Connection) error {
	return destroy(tx, e)
}

func (e *ActualExpense) GetID() uuid.UUID {
	return e.ID
}

func (e *ActualExpense) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, e, id)
}

// IsActorAllowedTo allows viewers of the travel request to view the expense. Only managers of the request
// may change it.
func (e *ActualExpense) IsActorAllowedTo(tx *pop.Connection, actor User, perm Permission, sub SubResource, r *http.Request) bool {
	e.LoadTravelRequest(tx, false)

	if perm == PermissionView {
		return CanView(tx, actor, &e.TravelRequest)
	}
	return canManageTravelRequest(tx, actor, &e.TravelRequest)
}

func (e *ActualExpense) LoadTravelRequest(tx *pop.Connection, reload bool) {
	if e.TravelRequest.ID == uuid.Nil || reload {
		if err := tx.Load(e, "TravelRequest"); err != nil {
			panic("database error loading ActualExpense.TravelRequest, " + err.Error())
		}
	}
}

func (e *ActualExpense) LoadFund(tx *pop.Connection, reload bool) {
	if e.Fund.ID == uuid.Nil || reload {
		if err := tx.Load(e, "Fund"); err != nil {
			panic("database error loading ActualExpense.Fund, " + err.Error())
		}
	}
}

// UpdateFromInput changes the fund, type, total, and payment date
func (e *ActualExpense) UpdateFromInput(tx *pop.Connection, input api.ActualExpenseInput) error {
	e.FundID = input.FundID
	e.Type = input.Type
	e.Total = input.Total.Decimal
	e.DatePaid = nulls.Time{}
	if input.DatePaid != "" {
		d, err := parseDate("date_paid", input.DatePaid)
		if err != nil {
			return err
		}
		e.DatePaid = nulls.NewTime(d)
	}
	e.Fund = Fund{}
	return e.Update(tx)
}

// TotalDollars renders the total for display, e.g. "$250.00"
func (e *ActualExpense) TotalDollars() string {
	return api.FormatDollars(e.Total)
}

func (e *ActualExpense) ConvertToAPI(tx *pop.Connection) api.ActualExpense {
	e.LoadFund(tx, false)

	expense := api.ActualExpense{
		ID:              e.ID,
		TravelRequestID: e.TravelRequestID,
		FundID:          e.FundID,
		FundName:        e.Fund.String(),
		Type:            e.Type,
		Total:           api.NewCurrency(e.Total),
	}
	if e.DatePaid.Valid {
		expense.DatePaid = e.DatePaid.Time.Format(domain.DateFormat)
	}
	return expense
}

func (es ActualExpenses) ConvertToAPI(tx *pop.Connection) api.ActualExpenses {
	expenses := make(api.ActualExpenses, len(es))
	for i := range es {
		expenses[i] = es[i].ConvertToAPI(tx)
	}
	return expenses
}

// Total returns the sum of the expense totals
func (es ActualExpenses) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range es {
		total = total.Add(e.Total)
	}
	return total
}
