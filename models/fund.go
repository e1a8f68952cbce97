package models

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/silinternational/terra/api"
)

type Funds []Fund

// Fund is a source of money, identified by account, cost center, and fund code
type Fund struct {
	ID         uuid.UUID  `db:"id"`
	Account    string     `db:"account" validate:"required"`
	CostCenter string     `db:"cost_center" validate:"required"`
	Fund       string     `db:"fund" validate:"required"`
	ManagerID  nulls.UUID `db:"manager_id"`
	UnitID     nulls.UUID `db:"unit_id"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
}

// String returns the identity string account-costcenter-fund
func (f Fund) String() string {
	return f.Account + "-" + f.CostCenter + "-" + f.Fund
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (f *Fund) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(f), nil
}

func (f *Fund) Create(tx *pop.Connection) error {
	return create(tx, f)
}

func (f *Fund) Update(tx *pop.Connection) error {
	return update(tx, f)
}

func (f *Fund) GetID() uuid.UUID {
	return f.ID
}

func (f *Fund) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, f, id)
}

// FindByName loads the fund matching an identity string like 605000-LD-19900
func (f *Fund) FindByName(tx *pop.Connection, name string) error {
	parts := strings.SplitN(name, "-", 3)
	if len(parts) != 3 {
		return api.NewAppError(fmt.Errorf("invalid fund name %q", name), api.ErrorNoRows, api.CategoryNotFound)
	}
	err := tx.Where("account = ? and cost_center = ? and fund = ?", parts[0], parts[1], parts[2]).First(f)
	return appErrorFromDB(err, api.ErrorQueryFailure)
}

// IsActorAllowedTo allows the fund manager and users with full report access to view the fund and its report
func (f *Fund) IsActorAllowedTo(tx *pop.Connection, actor User, perm Permission, sub SubResource, r *http.Request) bool {
	switch perm {
	case PermissionList:
		return true
	case PermissionView:
		return CanView(tx, actor, f)
	default:
		return actor.IsAdmin()
	}
}

func (f *Fund) ConvertToAPI() api.Fund {
	return api.Fund{
		ID:         f.ID,
		Name:       f.String(),
		Account:    f.Account,
		CostCenter: f.CostCenter,
		Fund:       f.Fund,
		ManagerID:  convertUUIDToAPI(f.ManagerID),
		UnitID:     convertUUIDToAPI(f.UnitID),
	}
}

func (fs Funds) ConvertToAPI() api.Funds {
	funds := make(api.Funds, len(fs))
	for i := range fs {
		funds[i] = fs[i].ConvertToAPI()
	}
	return funds
}

// FundsViewableBy returns all funds for users with full report access, otherwise the funds the actor manages
func FundsViewableBy(tx *pop.Connection, actor User) (Funds, error) {
	var funds Funds
	q := tx.Order("account asc, cost_center asc, fund asc")
	if !actor.HasFullReportAccess() {
		employee, ok := actor.Employee(tx)
		if !ok {
			return Funds{}, nil
		}
		q = q.Where("manager_id = ?", employee.ID)
	}
	if err := q.All(&funds); err != nil {
		return nil, appErrorFromDB(err, api.ErrorQueryFailure)
	}
	return funds, nil
}
