package models

import (
	"github.com/gobuffalo/pop/v6"

	"github.com/silinternational/terra/log"
)

// CanView reports whether the actor may view the target, which must be a *Unit, *Fund, *TravelRequest, or
// *Employee. Users with full report access may view everything. Otherwise the decision follows the
// organizational hierarchy from the actor's employee record; an actor who is not an employee may view nothing.
func CanView(tx *pop.Connection, actor User, target any) bool {
	if actor.HasFullReportAccess() {
		return true
	}

	viewer, ok := actor.Employee(tx)
	if !ok {
		return false
	}

	switch t := target.(type) {
	case *Unit:
		return isUnitSuperManager(tx, viewer, t)
	case *Fund:
		return t.ManagerID.Valid && t.ManagerID.UUID == viewer.ID
	case *TravelRequest:
		t.LoadTraveler(tx, false)
		return viewer.ID == t.TravelerID || isSupervisorOrSuperManager(tx, viewer, &t.Traveler)
	case *Employee:
		return viewer.ID == t.ID || isSupervisorOrSuperManager(tx, viewer, t)
	}

	return false
}

// isUnitSuperManager is true if the viewer manages the unit or any unit above it
func isUnitSuperManager(tx *pop.Connection, viewer Employee, unit *Unit) bool {
	managers, err := unit.SuperManagerIDs(tx)
	if err != nil {
		log.Errorf("failed to load super managers of unit %s: %s", unit.ID, err)
		return false
	}
	return containsID(managers, viewer.ID)
}

// isSupervisorOrSuperManager is true if the viewer is the employee's supervisor or manages the employee's unit
// or any unit above it
func isSupervisorOrSuperManager(tx *pop.Connection, viewer Employee, employee *Employee) bool {
	if employee.SupervisorID.Valid && employee.SupervisorID.UUID == viewer.ID {
		return true
	}

	managers, err := employee.SuperManagerIDs(tx)
	if err != nil {
		log.Errorf("failed to load super managers of employee %s: %s", employee.ID, err)
		return false
	}
	return containsID(managers, viewer.ID)
}

// canManageTravelRequest allows admins and anyone above the traveler in the hierarchy, except the traveler
func canManageTravelRequest(tx *pop.Connection, actor User, t *TravelRequest) bool {
	if actor.IsAdmin() {
		return true
	}

	manager, ok := actor.Employee(tx)
	if !ok || manager.ID == t.TravelerID {
		return false
	}

	t.LoadTraveler(tx, false)
	return isSupervisorOrSuperManager(tx, manager, &t.Traveler)
}

func isTraveler(tx *pop.Connection, actor User, t *TravelRequest) bool {
	employee, ok := actor.Employee(tx)
	return ok && employee.ID == t.TravelerID
}

// isFundManager is true if the actor manages at least one fund
func isFundManager(tx *pop.Connection, actor User) bool {
	employee, ok := actor.Employee(tx)
	if !ok {
		return false
	}
	n, err := tx.Where("manager_id = ?", employee.ID).Count(&Funds{})
	if err != nil {
		log.Errorf("failed to count funds managed by %s: %s", employee.ID, err)
		return false
	}
	return n > 0
}
