package models

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/silinternational/terra/api"
	"github.com/silinternational/terra/domain"
)

var ValidUnitTypes = map[api.UnitType]struct{}{
	api.UnitTypeLibrary:           {},
	api.UnitTypeExecutiveDivision: {},
	api.UnitTypeManagerialUnit:    {},
	api.UnitTypeTeam:              {},
}

type Units []Unit

// Unit is a node in the organizational hierarchy
type Unit struct {
	ID           uuid.UUID    `db:"id"`
	Name         string       `db:"name" validate:"required"`
	Type         api.UnitType `db:"type" validate:"unitType"`
	ManagerID    nulls.UUID   `db:"manager_id"`
	ParentUnitID nulls.UUID   `db:"parent_unit_id"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
}

// String returns the unit name
func (u Unit) String() string {
	return u.Name
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
// In addition to field validation, it rejects a parent link that would make the unit its own ancestor.
func (u *Unit) Validate(tx *pop.Connection) (*validate.Errors, error) {
	vErrs := validateModel(u)

	if !u.ParentUnitID.Valid {
		return vErrs, nil
	}
	if u.ParentUnitID.UUID == u.ID {
		vErrs.Add("Unit.ParentUnitID", "a unit cannot be its own parent")
		return vErrs, nil
	}

	parent := func(id uuid.UUID) (nulls.UUID, error) {
		if id == u.ID {
			return u.ParentUnitID, nil
		}
		return unitParentID(tx, id)
	}
	_, cycle, err := walkAncestors(u.ID, parent)
	if err != nil {
		return vErrs, err
	}
	if cycle {
		vErrs.Add("Unit.ParentUnitID", "parent unit would create a cycle")
	}

	return vErrs, nil
}

func unitParentID(tx *pop.Connection, id uuid.UUID) (nulls.UUID, error) {
	var parent Unit
	if err := tx.Select("id", "parent_unit_id").Find(&parent, id); err != nil {
		if domain.IsOtherThanNoRows(err) {
			return nulls.UUID{}, err
		}
		return nulls.UUID{}, nil
	}
	return parent.ParentUnitID, nil
}

func (u *Unit) Create(tx *pop.Connection) error {
	return create(tx, u)
}

func (u *Unit) Update(tx *pop.Connection) error {
	return update(tx, u)
}

// Destroy deletes the unit. Units that still have subunits or funds are protected.
func (u *Unit) Destroy(tx *pop.Connection) error {
	n, err := tx.Where("parent_unit_id = ?", u.ID).Count(&Units{})
	if err != nil {
		return appErrorFromDB(err, api.ErrorQueryFailure)
	}
	if n > 0 {
		return api.NewAppError(fmt.Errorf("unit %s has %d subunits", u.Name, n), api.ErrorUnitHasChildren,
			api.CategoryUser)
	}

	n, err = tx.Where("unit_id = ?", u.ID).Count(&Funds{})
	if err != nil {
		return appErrorFromDB(err, api.ErrorQueryFailure)
	}
	if n > 0 {
		return api.NewAppError(fmt.Errorf("unit %s has %d funds", u.Name, n), api.ErrorUnitHasFunds,
			api.CategoryUser)
	}

	return destroy(tx, u)
}

func (u *Unit) GetID() uuid.UUID {
	return u.ID
}

func (u *Unit) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, u, id)
}

// FindByName loads the unit with the given name
func (u *Unit) FindByName(tx *pop.Connection, name string) error {
	return appErrorFromDB(tx.Where("name = ?", name).First(u), api.ErrorQueryFailure)
}

// IsActorAllowedTo allows managers of the unit or any ancestor unit, and users with full report access, to
// view the unit and its report. Only admins may delete a unit.
func (u *Unit) IsActorAllowedTo(tx *pop.Connection, actor User, perm Permission, sub SubResource, r *http.Request) bool {
	switch perm {
	case PermissionList:
		return true
	case PermissionView:
		return CanView(tx, actor, u)
	default:
		return actor.IsAdmin()
	}
}

// Parent returns the parent unit. The boolean is false for a root unit.
func (u *Unit) Parent(tx *pop.Connection) (Unit, bool) {
	var parent Unit
	if !u.ParentUnitID.Valid {
		return parent, false
	}
	if err := parent.FindByID(tx, u.ParentUnitID.UUID); err != nil {
		panic("database error loading Unit parent, " + err.Error())
	}
	return parent, true
}

// Subunits returns the immediate children of the unit, ordered by name
func (u *Unit) Subunits(tx *pop.Connection) Units {
	var units Units
	if err := tx.Where("parent_unit_id = ?", u.ID).Order("name asc").All(&units); err != nil {
		panic("database error loading subunits, " + err.Error())
	}
	return units
}

// EmployeeCount returns the number of active employees directly in the unit
func (u *Unit) EmployeeCount(tx *pop.Connection) int {
	n, err := tx.Where("unit_id = ? and active = ?", u.ID, true).Count(&Employees{})
	if err != nil {
		panic("database error counting unit employees, " + err.Error())
	}
	return n
}

// AncestorIDs returns the IDs of the parent, grandparent, and so on up to the root
func (u *Unit) AncestorIDs(tx *pop.Connection) ([]uuid.UUID, error) {
	parent := func(id uuid.UUID) (nulls.UUID, error) {
		if id == u.ID {
			return u.ParentUnitID, nil
		}
		return unitParentID(tx, id)
	}
	ids, _, err := walkAncestors(u.ID, parent)
	return ids, err
}

// Ancestors returns the parent, grandparent, and so on up to the root
func (u *Unit) Ancestors(tx *pop.Connection) (Units, error) {
	ids, err := u.AncestorIDs(tx)
	if err != nil {
		return nil, err
	}
	units := make(Units, len(ids))
	for i, id := range ids {
		if err := units[i].FindByID(tx, id); err != nil {
			return nil, err
		}
	}
	return units, nil
}

// DescendantIDs returns the IDs of all units below this one
func (u *Unit) DescendantIDs(tx *pop.Connection) ([]uuid.UUID, error) {
	children := func(id uuid.UUID) ([]uuid.UUID, error) {
		var units Units
		if err := tx.Select("id").Where("parent_unit_id = ?", id).All(&units); err != nil {
			return nil, err
		}
		ids := make([]uuid.UUID, len(units))
		for i := range units {
			ids[i] = units[i].ID
		}
		return ids, nil
	}
	return walkDescendants(u.ID, children)
}

// SuperManagerIDs returns the employee IDs of the manager of this unit and of every ancestor unit, without
// duplicates, nearest first.
func (u *Unit) SuperManagerIDs(tx *pop.Connection) ([]uuid.UUID, error) {
	var managers []uuid.UUID
	if u.ManagerID.Valid {
		managers = append(managers, u.ManagerID.UUID)
	}

	ancestors, err := u.Ancestors(tx)
	if err != nil {
		return nil, err
	}
	for _, a := range ancestors {
		if a.ManagerID.Valid {
			managers = append(managers, a.ManagerID.UUID)
		}
	}

	return uniqueIDs(managers), nil
}

// SuperManagers returns the managers of this unit and of every ancestor unit, without duplicates
func (u *Unit) SuperManagers(tx *pop.Connection) (Employees, error) {
	ids, err := u.SuperManagerIDs(tx)
	if err != nil {
		return nil, err
	}
	managers := make(Employees, len(ids))
	for i, id := range ids {
		if err := managers[i].FindByID(tx, id); err != nil {
			return nil, err
		}
	}
	return managers, nil
}

// Manager returns the unit manager. The boolean is false if the unit has no manager.
func (u *Unit) Manager(tx *pop.Connection) (Employee, bool) {
	var m Employee
	if !u.ManagerID.Valid {
		return m, false
	}
	if err := m.FindByID(tx, u.ManagerID.UUID); err != nil {
		var appErr *api.AppError
		if errors.As(err, &appErr) && appErr.Key == api.ErrorNoRows {
			return m, false
		}
		panic("database error loading Unit manager, " + err.Error())
	}
	return m, true
}

func (u *Unit) ConvertToAPI(tx *pop.Connection) api.Unit {
	subunits := u.Subunits(tx)
	summaries := make([]api.UnitSummary, len(subunits))
	for i, s := range subunits {
		summaries[i] = api.UnitSummary{ID: s.ID, Name: s.Name, Type: s.Type}
	}

	unit := api.Unit{
		ID:            u.ID,
		Name:          u.Name,
		Type:          u.Type,
		ManagerID:     convertUUIDToAPI(u.ManagerID),
		ParentUnitID:  convertUUIDToAPI(u.ParentUnitID),
		EmployeeCount: u.EmployeeCount(tx),
		Subunits:      summaries,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
	if m, ok := u.Manager(tx); ok {
		unit.ManagerName = m.Name()
	}
	return unit
}

func (us Units) ConvertToAPI(tx *pop.Connection) api.Units {
	units := make(api.Units, len(us))
	for i := range us {
		units[i] = us[i].ConvertToAPI(tx)
	}
	return units
}

// SortByName orders the units by name
func (us Units) SortByName() {
	sort.Slice(us, func(i, j int) bool { return us[i].Name < us[j].Name })
}

// UnitsViewableBy returns the units the actor may view: all units for full report access, otherwise the units
// managed by the actor and everything below them.
func UnitsViewableBy(tx *pop.Connection, actor User) (Units, error) {
	var units Units
	if actor.HasFullReportAccess() {
		if err := tx.Order("name asc").All(&units); err != nil {
			return nil, appErrorFromDB(err, api.ErrorQueryFailure)
		}
		return units, nil
	}

	employee, ok := actor.Employee(tx)
	if !ok {
		return Units{}, nil
	}

	var managed Units
	if err := tx.Where("manager_id = ?", employee.ID).All(&managed); err != nil {
		return nil, appErrorFromDB(err, api.ErrorQueryFailure)
	}

	var ids []uuid.UUID
	for i := range managed {
		ids = append(ids, managed[i].ID)
		descendants, err := managed[i].DescendantIDs(tx)
		if err != nil {
			return nil, appErrorFromDB(err, api.ErrorQueryFailure)
		}
		ids = append(ids, descendants...)
	}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return Units{}, nil
	}

	if err := tx.Where("id in (?)", uuidsToAny(ids)...).Order("name asc").All(&units); err != nil {
		return nil, appErrorFromDB(err, api.ErrorQueryFailure)
	}
	return units, nil
}

func uuidsToAny(ids []uuid.UUID) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
