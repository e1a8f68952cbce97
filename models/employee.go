package models

import (
	"net/http"
	"sort"
	"time"

	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"

	"github.com/silinternational/terra/api"
	"github.com/silinternational/terra/domain"
)

type Employees []Employee

// Employee is a staff member in a unit. Names and email come from the linked User.
type Employee struct {
	ID                   uuid.UUID       `db:"id"`
	UID                  string          `db:"uid" validate:"required"`
	UserID               uuid.UUID       `db:"user_id" validate:"required"`
	UnitID               uuid.UUID       `db:"unit_id" validate:"required"`
	SupervisorID         nulls.UUID      `db:"supervisor_id"`
	ExtraAllocation      decimal.Decimal `db:"extra_allocation"`
	AllocationExpireDate nulls.Time      `db:"allocation_expire_date"`
	Active               bool            `db:"active"`
	CreatedAt            time.Time       `db:"created_at"`
	UpdatedAt            time.Time       `db:"updated_at"`

	User User `belongs_to:"users" validate:"-"`
	Unit Unit `belongs_to:"units" validate:"-"`
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
// In addition to field validation, it rejects a supervisor that would make the employee their own
// indirect supervisor.
func (e *Employee) Validate(tx *pop.Connection) (*validate.Errors, error) {
	vErrs := validateModel(e)

	if !e.SupervisorID.Valid {
		return vErrs, nil
	}
	if e.SupervisorID.UUID == e.ID {
		vErrs.Add("Employee.SupervisorID", "an employee cannot supervise themselves")
		return vErrs, nil
	}

	_, cycle, err := walkAncestors(e.ID, e.supervisorFunc(tx))
	if err != nil {
		return vErrs, err
	}
	if cycle {
		vErrs.Add("Employee.SupervisorID", "supervisor would create a cycle")
	}

	return vErrs, nil
}

func (e *Employee) supervisorFunc(tx *pop.Connection) parentFunc {
	return func(id uuid.UUID) (nulls.UUID, error) {
		if id == e.ID {
			return e.SupervisorID, nil
		}
		var s Employee
		if err := tx.Select("id", "supervisor_id").Find(&s, id); err != nil {
			if domain.IsOtherThanNoRows(err) {
				return nulls.UUID{}, err
			}
			return nulls.UUID{}, nil
		}
		return s.SupervisorID, nil
	}
}

func (e *Employee) Create(tx *pop.Connection) error {
	return create(tx, e)
}

func (e *Employee) Update(tx *pop.Connection) error {
	return update(tx, e)
}

func (e *Employee) GetID() uuid.UUID {
	return e.ID
}

// FindByID loads the employee along with the linked User and Unit
func (e *Employee) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return appErrorFromDB(tx.Eager("User", "Unit").Find(e, id), api.ErrorQueryFailure)
}

// FindByUID loads the employee with the given staff identifier, along with the linked User and Unit
func (e *Employee) FindByUID(tx *pop.Connection, uid string) error {
	return appErrorFromDB(tx.Eager("User", "Unit").Where("uid = ?", uid).First(e), api.ErrorQueryFailure)
}

// IsActorAllowedTo allows the employee, their supervisor, the managers above them, and users with full
// report access to view the employee.
func (e *Employee) IsActorAllowedTo(tx *pop.Connection, actor User, perm Permission, sub SubResource, r *http.Request) bool {
	switch perm {
	case PermissionView:
		return CanView(tx, actor, e)
	default:
		return actor.IsAdmin()
	}
}

func (e *Employee) LoadUser(tx *pop.Connection, reload bool) {
	if e.User.ID == uuid.Nil || reload {
		if err := tx.Load(e, "User"); err != nil {
			panic("database error loading Employee.User, " + err.Error())
		}
	}
}

func (e *Employee) LoadUnit(tx *pop.Connection, reload bool) {
	if e.Unit.ID == uuid.Nil || reload {
		if err := tx.Load(e, "Unit"); err != nil {
			panic("database error loading Employee.Unit, " + err.Error())
		}
	}
}

// Name returns "First Last" from the linked User, which must already be loaded
func (e *Employee) Name() string {
	return e.User.Name()
}

// Supervisor returns the employee's supervisor. The boolean is false if there is none.
func (e *Employee) Supervisor(tx *pop.Connection) (Employee, bool) {
	var s Employee
	if !e.SupervisorID.Valid {
		return s, false
	}
	if err := s.FindByID(tx, e.SupervisorID.UUID); err != nil {
		panic("database error loading Employee supervisor, " + err.Error())
	}
	return s, true
}

// SuperManagerIDs returns the IDs of the managers of the employee's unit and every unit above it
func (e *Employee) SuperManagerIDs(tx *pop.Connection) ([]uuid.UUID, error) {
	e.LoadUnit(tx, false)
	return e.Unit.SuperManagerIDs(tx)
}

// ProfDevCap returns the professional development allocation for the fiscal year containing asOf: the
// standard allocation plus any extra allocation that has not expired.
func (e *Employee) ProfDevCap(asOf time.Time) decimal.Decimal {
	allocation := domain.Env.ProfDevAllocationAmount
	if !e.AllocationExpireDate.Valid || !e.AllocationExpireDate.Time.Before(domain.BeginningOfDay(asOf)) {
		allocation = allocation.Add(e.ExtraAllocation)
	}
	return allocation
}

func (e *Employee) ConvertToAPI(tx *pop.Connection) api.Employee {
	e.LoadUser(tx, false)
	e.LoadUnit(tx, false)

	return api.Employee{
		ID:                   e.ID,
		UID:                  e.UID,
		Name:                 e.Name(),
		Email:                e.User.Email,
		UnitID:               e.UnitID,
		UnitName:             e.Unit.Name,
		SupervisorID:         convertUUIDToAPI(e.SupervisorID),
		ExtraAllocation:      api.NewCurrency(e.ExtraAllocation),
		AllocationExpireDate: convertDateToAPI(e.AllocationExpireDate),
		Active:               e.Active,
	}
}

// SortByName orders employees by name. The User of each employee must be loaded.
func (es Employees) SortByName() {
	sort.SliceStable(es, func(i, j int) bool { return es[i].Name() < es[j].Name() })
}
