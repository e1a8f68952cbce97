package models

import (
	"fmt"
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

type TravelRequests []TravelRequest

// TravelRequest is a trip by one employee to one activity
type TravelRequest struct {
	ID             uuid.UUID `db:"id"`
	TravelerID     uuid.UUID `db:"traveler_id" validate:"required"`
	ActivityID     uuid.UUID `db:"activity_id" validate:"required"`
	DepartureDate  time.Time `db:"departure_date" validate:"required"`
	ReturnDate     time.Time `db:"return_date" validate:"required"`
	DaysOOO        int       `db:"days_ooo" validate:"gte=0"`
	Administrative bool      `db:"administrative"`
	Closed         bool      `db:"closed"`
	Justification  string    `db:"justification"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`

	Traveler          Employee          `belongs_to:"employees" validate:"-"`
	Activity          Activity          `belongs_to:"activities" validate:"-"`
	Approvals         Approvals         `has_many:"approvals" order_by:"approved_on asc" validate:"-"`
	EstimatedExpenses EstimatedExpenses `has_many:"estimated_expenses" order_by:"created_at asc" validate:"-"`
	ActualExpenses    ActualExpenses    `has_many:"actual_expenses" order_by:"created_at asc" validate:"-"`
	Vacations         Vacations         `has_many:"vacations" order_by:"start_date asc" validate:"-"`
}

// String returns the traveler's name and the activity, e.g. "Ashton Prigge - Code4lib 2020"
func (t TravelRequest) String() string {
	return t.Traveler.Name() + " - " + t.Activity.String()
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (t *TravelRequest) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(t), nil
}

func (t *TravelRequest) Create(tx *pop.Connection) error {
	return create(tx, t)
}

func (t *TravelRequest) Update(tx *pop.Connection) error {
	return update(tx, t)
}

func (t *TravelRequest) GetID() uuid.UUID {
	return t.ID
}

func (t *TravelRequest) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, t, id)
}

// IsActorAllowedTo checks permissions for the travel request itself and for its sub-resources:
//   - view: anyone who can view the traveler, or users with full report access
//   - close, approvals, actual expenses: the traveler's supervisor, the managers above the traveler, and admins.
//     Fund managers may also add approvals.
//   - estimated expenses, vacations: the above plus the traveler, while the request is open
func (t *TravelRequest) IsActorAllowedTo(tx *pop.Connection, actor User, perm Permission, sub SubResource, r *http.Request) bool {
	switch perm {
	case PermissionList:
		return true
	case PermissionView:
		return CanView(tx, actor, t)
	case PermissionDelete:
		return actor.IsAdmin()
	}

	switch sub {
	case domain.TypeEstimatedExpense, domain.TypeVacation:
		return canManageTravelRequest(tx, actor, t) || (!t.Closed && isTraveler(tx, actor, t))
	case domain.TypeApproval:
		return canManageTravelRequest(tx, actor, t) || isFundManager(tx, actor)
	default:
		return canManageTravelRequest(tx, actor, t)
	}
}

func (t *TravelRequest) LoadTraveler(tx *pop.Connection, reload bool) {
	if t.Traveler.ID == uuid.Nil || reload {
		if err := t.Traveler.FindByID(tx, t.TravelerID); err != nil {
			panic("database error loading TravelRequest.Traveler, " + err.Error())
		}
	}
}

func (t *TravelRequest) LoadActivity(tx *pop.Connection, reload bool) {
	if t.Activity.ID == uuid.Nil || reload {
		if err := tx.Load(t, "Activity"); err != nil {
			panic("database error loading TravelRequest.Activity, " + err.Error())
		}
	}
}

func (t *TravelRequest) LoadApprovals(tx *pop.Connection, reload bool) {
	if t.Approvals == nil || reload {
		if err := tx.Load(t, "Approvals"); err != nil {
			panic("database error loading TravelRequest.Approvals, " + err.Error())
		}
	}
}

func (t *TravelRequest) LoadEstimatedExpenses(tx *pop.Connection, reload bool) {
	if t.EstimatedExpenses == nil || reload {
		if err := tx.Load(t, "EstimatedExpenses"); err != nil {
			panic("database error loading TravelRequest.EstimatedExpenses, " + err.Error())
		}
	}
}

func (t *TravelRequest) LoadActualExpenses(tx *pop.Connection, reload bool) {
	if t.ActualExpenses == nil || reload {
		if err := tx.Load(t, "ActualExpenses"); err != nil {
			panic("database error loading TravelRequest.ActualExpenses, " + err.Error())
		}
	}
}

func (t *TravelRequest) LoadVacations(tx *pop.Connection, reload bool) {
	if t.Vacations == nil || reload {
		if err := tx.Load(t, "Vacations"); err != nil {
			panic("database error loading TravelRequest.Vacations, " + err.Error())
		}
	}
}

// AllocationsTotal returns the sum of the approved amounts
func (t *TravelRequest) AllocationsTotal(tx *pop.Connection) decimal.Decimal {
	t.LoadApprovals(tx, true)
	return t.Approvals.Total()
}

// ExpendituresTotal returns the sum of the actual expenses
func (t *TravelRequest) ExpendituresTotal(tx *pop.Connection) decimal.Decimal {
	t.LoadActualExpenses(tx, true)
	return t.ActualExpenses.Total()
}

// EstimatedTotal returns the sum of the estimated expenses
func (t *TravelRequest) EstimatedTotal(tx *pop.Connection) decimal.Decimal {
	t.LoadEstimatedExpenses(tx, true)
	return t.EstimatedExpenses.Total()
}

// Funded is true if the total approved amount is greater than zero
func (t *TravelRequest) Funded(tx *pop.Connection) bool {
	return t.AllocationsTotal(tx).IsPositive()
}

// International is true if the activity is outside the home country
func (t *TravelRequest) International(tx *pop.Connection) bool {
	t.LoadActivity(tx, true)
	return t.Activity.IsInternational()
}

// Approved is true if every approval required by the current activity and estimated expenses exists
func (t *TravelRequest) Approved(tx *pop.Connection) bool {
	t.LoadActivity(tx, true)
	t.LoadApprovals(tx, true)
	t.LoadEstimatedExpenses(tx, true)
	return isApproved(t.requiredApprovals(), t.Approvals)
}

// RequiredApprovals lists the approval types the request needs given its current activity and estimates
func (t *TravelRequest) RequiredApprovals(tx *pop.Connection) []api.ApprovalType {
	t.LoadActivity(tx, true)
	t.LoadEstimatedExpenses(tx, true)
	return t.requiredApprovals()
}

// requiredApprovals uses the loaded Activity and EstimatedExpenses
func (t *TravelRequest) requiredApprovals() []api.ApprovalType {
	required := []api.ApprovalType{api.ApprovalTypeSupervisor}
	if t.Activity.IsInternational() {
		required = append(required, api.ApprovalTypeInternational)
	}
	if t.EstimatedExpenses.Total().IsPositive() {
		required = append(required, api.ApprovalTypeFunding)
	}
	return required
}

func isApproved(required []api.ApprovalType, approvals Approvals) bool {
	have := map[api.ApprovalType]struct{}{}
	for _, a := range approvals {
		have[a.Type] = struct{}{}
	}
	for _, r := range required {
		if _, ok := have[r]; !ok {
			return false
		}
	}
	return true
}

// Close marks the request as closed. Estimated expenses and vacations can no longer be changed by the traveler.
func (t *TravelRequest) Close(tx *pop.Connection) error {
	if t.Closed {
		return nil
	}
	t.Closed = true
	if err := t.Update(tx); err != nil {
		return err
	}

	emitEvent(events.Event{
		Kind:    domain.EventApiRequestClosed,
		Message: "Travel request closed",
		Payload: events.Payload{domain.EventPayloadID: t.ID},
	})
	return nil
}

func (t *TravelRequest) errIfClosed() error {
	if t.Closed {
		return api.NewAppError(fmt.Errorf("travel request %s is closed", t.ID), api.ErrorTravelRequestClosed,
			api.CategoryUser)
	}
	return nil
}

// AddApproval records an approval by the given employee
func (t *TravelRequest) AddApproval(tx *pop.Connection, approver Employee, input api.ApprovalCreateInput) (Approval, error) {
	if err := t.errIfClosed(); err != nil {
		return Approval{}, err
	}

	approvedOn := time.Now().UTC()
	if input.ApprovedOn != "" {
		var err error
		if approvedOn, err = parseDate("approved_on", input.ApprovedOn); err != nil {
			return Approval{}, err
		}
	}

	approval := Approval{
		TravelRequestID: t.ID,
		Type:            input.Type,
		ApprovedByID:    approver.ID,
		ApprovedOn:      approvedOn,
		Amount:          input.Amount.Decimal,
	}
	if input.FundID != nil {
		approval.FundID = nulls.NewUUID(*input.FundID)
	}

	if err := approval.Create(tx); err != nil {
		return Approval{}, err
	}
	return approval, nil
}

// CanApprove reports whether the actor may record the approval. A fund manager who is not above the traveler
// may only record a Funding approval charged to a fund they manage.
func (t *TravelRequest) CanApprove(tx *pop.Connection, actor User, input api.ApprovalCreateInput) bool {
	if canManageTravelRequest(tx, actor, t) {
		return true
	}
	if input.Type != api.ApprovalTypeFunding || input.FundID == nil {
		return false
	}

	employee, ok := actor.Employee(tx)
	if !ok {
		return false
	}
	var fund Fund
	if err := fund.FindByID(tx, *input.FundID); err != nil {
		return false
	}
	return fund.ManagerID.Valid && fund.ManagerID.UUID == employee.ID
}

// AddEstimatedExpense adds a projected cost to an open request
func (t *TravelRequest) AddEstimatedExpense(tx *pop.Connection, input api.EstimatedExpenseInput) (EstimatedExpense, error) {
	if err := t.errIfClosed(); err != nil {
		return EstimatedExpense{}, err
	}

	expense := EstimatedExpense{
		TravelRequestID: t.ID,
		Type:            input.Type,
		Total:           input.Total.Decimal,
	}
	if err := expense.Create(tx); err != nil {
		return EstimatedExpense{}, err
	}
	return expense, nil
}

// AddActualExpense records a cost paid from a fund. Actual expenses may be recorded after the request is closed.
func (t *TravelRequest) AddActualExpense(tx *pop.Connection, input api.ActualExpenseInput) (ActualExpense, error) {
	expense := ActualExpense{
		TravelRequestID: t.ID,
		FundID:          input.FundID,
		Type:            input.Type,
		Total:           input.Total.Decimal,
	}
	if input.DatePaid != "" {
		d, err := parseDate("date_paid", input.DatePaid)
		if err != nil {
			return ActualExpense{}, err
		}
		expense.DatePaid = nulls.NewTime(d)
	}

	if err := expense.Create(tx); err != nil {
		return ActualExpense{}, err
	}
	return expense, nil
}

// AddVacation records personal days taken during the trip
func (t *TravelRequest) AddVacation(tx *pop.Connection, input api.VacationInput) (Vacation, error) {
	if err := t.errIfClosed(); err != nil {
		return Vacation{}, err
	}

	start, err := parseDate("start", input.Start)
	if err != nil {
		return Vacation{}, err
	}
	end, err := parseDate("end", input.End)
	if err != nil {
		return Vacation{}, err
	}

	vacation := Vacation{TravelRequestID: t.ID, Start: start, End: end}
	if err := vacation.Create(tx); err != nil {
		return Vacation{}, err
	}
	return vacation, nil
}

func (t *TravelRequest) ConvertToAPI(tx *pop.Connection) api.TravelRequest {
	t.LoadTraveler(tx, false)
	t.LoadActivity(tx, true)
	t.LoadApprovals(tx, true)
	t.LoadEstimatedExpenses(tx, true)
	t.LoadActualExpenses(tx, true)
	t.LoadVacations(tx, true)

	return api.TravelRequest{
		ID:                t.ID,
		Traveler:          t.Traveler.ConvertToAPI(tx),
		Activity:          t.Activity.ConvertToAPI(),
		DepartureDate:     t.DepartureDate.Format(domain.DateFormat),
		ReturnDate:        t.ReturnDate.Format(domain.DateFormat),
		DaysOOO:           t.DaysOOO,
		Administrative:    t.Administrative,
		Closed:            t.Closed,
		Justification:     t.Justification,
		Approved:          isApproved(t.requiredApprovals(), t.Approvals),
		Funded:            t.Approvals.Total().IsPositive(),
		International:     t.Activity.IsInternational(),
		AllocationsTotal:  api.NewCurrency(t.Approvals.Total()),
		ExpendituresTotal: api.NewCurrency(t.ActualExpenses.Total()),
		EstimatedTotal:    api.NewCurrency(t.EstimatedExpenses.Total()),
		Approvals:         t.Approvals.ConvertToAPI(tx),
		EstimatedExpenses: t.EstimatedExpenses.ConvertToAPI(),
		ActualExpenses:    t.ActualExpenses.ConvertToAPI(tx),
		Vacations:         t.Vacations.ConvertToAPI(),
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

func (ts TravelRequests) ConvertToAPI(tx *pop.Connection) api.TravelRequests {
	requests := make(api.TravelRequests, len(ts))
	for i := range ts {
		requests[i] = ts[i].ConvertToAPI(tx)
	}
	return requests
}

// TravelRequestsViewableBy lists the requests the actor may view, newest departure first. Supported
// filters: `closed` (true/false) and `administrative` (true/false).
func TravelRequestsViewableBy(tx *pop.Connection, actor User, q api.QueryParams) (TravelRequests, error) {
	query := tx.Q()

	if !actor.HasFullReportAccess() {
		employee, ok := actor.Employee(tx)
		if !ok {
			return TravelRequests{}, nil
		}
		ids, err := visibleEmployeeIDs(tx, employee)
		if err != nil {
			return nil, err
		}
		query = query.Where("traveler_id in (?)", uuidsToAny(ids)...)
	}

	for _, f := range []string{"closed", "administrative"} {
		switch q.Filter(f) {
		case "true":
			query = query.Where(f+" = ?", true)
		case "false":
			query = query.Where(f+" = ?", false)
		}
	}

	var requests TravelRequests
	err := query.Order("departure_date desc").Paginate(q.Page(), q.Limit()).All(&requests)
	if err != nil {
		return nil, appErrorFromDB(err, api.ErrorQueryFailure)
	}
	return requests, nil
}

// visibleEmployeeIDs returns the employee, their direct reports, and everyone in the units they manage
// or below
func visibleEmployeeIDs(tx *pop.Connection, employee Employee) ([]uuid.UUID, error) {
	ids := []uuid.UUID{employee.ID}

	var reports Employees
	if err := tx.Select("id").Where("supervisor_id = ?", employee.ID).All(&reports); err != nil {
		return nil, appErrorFromDB(err, api.ErrorQueryFailure)
	}
	for _, r := range reports {
		ids = append(ids, r.ID)
	}

	var managed Units
	if err := tx.Where("manager_id = ?", employee.ID).All(&managed); err != nil {
		return nil, appErrorFromDB(err, api.ErrorQueryFailure)
	}
	var unitIDs []uuid.UUID
	for i := range managed {
		descendants, err := managed[i].DescendantIDs(tx)
		if err != nil {
			return nil, appErrorFromDB(err, api.ErrorQueryFailure)
		}
		unitIDs = append(unitIDs, managed[i].ID)
		unitIDs = append(unitIDs, descendants...)
	}
	unitIDs = uniqueIDs(unitIDs)

	if len(unitIDs) > 0 {
		var members Employees
		if err := tx.Select("id").Where("unit_id in (?)", uuidsToAny(unitIDs)...).All(&members); err != nil {
			return nil, appErrorFromDB(err, api.ErrorQueryFailure)
		}
		for _, m := range members {
			ids = append(ids, m.ID)
		}
	}

	return uniqueIDs(ids), nil
}
