package models

import (
	"net/http"
	"time"

	"github.com/gobuffalo/events"
	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"

	"github.com/silinternational/terra/api"
	"github.com/silinternational/terra/domain"
)

var ValidApprovalTypes = map[api.ApprovalType]struct{}{
	api.ApprovalTypeSupervisor:    {},
	api.ApprovalTypeFunding:       {},
	api.ApprovalTypeInternational: {},
}

type Approvals []Approval

// Approval records that an employee approved a travel request, optionally allocating money from a fund
type Approval struct {
	ID              uuid.UUID        `db:"id"`
	TravelRequestID uuid.UUID        `db:"travel_request_id" validate:"required"`
	Type            api.ApprovalType `db:"type" validate:"approvalType"`
	ApprovedByID    uuid.UUID        `db:"approved_by_id" validate:"required"`
	ApprovedOn      time.Time        `db:"approved_on" validate:"required"`
	FundID          nulls.UUID       `db:"fund_id"`
	Amount          decimal.Decimal  `db:"amount"`
	CreatedAt       time.Time        `db:"created_at"`
	UpdatedAt       time.Time        `db:"updated_at"`

	TravelRequest TravelRequest `belongs_to:"travel_requests" validate:"-"`
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (a *Approval) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(a), nil
}

// Create stores the approval and emits an event so the traveler can be notified
func (a *Approval) Create(tx *pop.Connection) error {
	if err := create(tx, a); err != nil {
		return err
	}

	emitEvent(events.Event{
		Kind:    domain.EventApiApprovalCreated,
		Message: "Approval created",
		Payload: events.Payload{domain.EventPayloadID: a.ID},
	})
	return nil
}

// Destroy removes the approval, unless its travel request is closed
func (a *Approval) Destroy(tx *pop.Connection) error {
	a.LoadTravelRequest(tx, true)
	if err := a.TravelRequest.errIfClosed(); err != nil {
		return err
	}
	return destroy(tx, a)
}

func (a *Approval) GetID() uuid.UUID {
	return a.ID
}

func (a *Approval) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, a, id)
}

// IsActorAllowedTo allows viewers of the travel request to view the approval. An approval may be deleted by
// the approver, by anyone who can manage the travel request, or by an admin.
func (a *Approval) IsActorAllowedTo(tx *pop.Connection, actor User, perm Permission, sub SubResource, r *http.Request) bool {
	a.LoadTravelRequest(tx, false)

	switch perm {
	case PermissionView:
		return CanView(tx, actor, &a.TravelRequest)
	case PermissionDelete:
		if employee, ok := actor.Employee(tx); ok && employee.ID == a.ApprovedByID {
			return true
		}
		return canManageTravelRequest(tx, actor, &a.TravelRequest)
	default:
		return actor.IsAdmin()
	}
}

func (a *Approval) LoadTravelRequest(tx *pop.Connection, reload bool) {
	if a.TravelRequest.ID == uuid.Nil || reload {
		if err := tx.Load(a, "TravelRequest"); err != nil {
			panic("database error loading Approval.TravelRequest, " + err.Error())
		}
	}
}

// Fund returns the fund charged by the approval. The boolean is false if no fund is set.
func (a *Approval) Fund(tx *pop.Connection) (Fund, bool) {
	var f Fund
	if !a.FundID.Valid {
		return f, false
	}
	if err := f.FindByID(tx, a.FundID.UUID); err != nil {
		panic("database error loading Approval fund, " + err.Error())
	}
	return f, true
}

// ApprovedBy returns the approving employee
func (a *Approval) ApprovedBy(tx *pop.Connection) Employee {
	var e Employee
	if err := e.FindByID(tx, a.ApprovedByID); err != nil {
		panic("database error loading Approval approver, " + err.Error())
	}
	return e
}

// AmountDollars renders the amount for display, e.g. "$250.00"
func (a *Approval) AmountDollars() string {
	return api.FormatDollars(a.Amount)
}

func (a *Approval) ConvertToAPI(tx *pop.Connection) api.Approval {
	approver := a.ApprovedBy(tx)
	approval := api.Approval{
		ID:              a.ID,
		TravelRequestID: a.TravelRequestID,
		Type:            a.Type,
		ApprovedByID:    a.ApprovedByID,
		ApprovedByName:  approver.Name(),
		ApprovedOn:      a.ApprovedOn.Format(domain.DateFormat),
		FundID:          convertUUIDToAPI(a.FundID),
		Amount:          api.NewCurrency(a.Amount),
	}
	if f, ok := a.Fund(tx); ok {
		approval.FundName = f.String()
	}
	return approval
}

func (as Approvals) ConvertToAPI(tx *pop.Connection) api.Approvals {
	approvals := make(api.Approvals, len(as))
	for i := range as {
		approvals[i] = as[i].ConvertToAPI(tx)
	}
	return approvals
}

// Total returns the sum of the approved amounts
func (as Approvals) Total() decimal.Decimal {
	total := decimal.Zero
	for _, a := range as {
		total = total.Add(a.Amount)
	}
	return total
}
