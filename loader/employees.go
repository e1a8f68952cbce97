package loader

import (
	"fmt"
	"io"
	"strings"

	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"
	"github.com/pkg/errors"

	"github.com/silinternational/terra/api"
	"github.com/silinternational/terra/models"
)

// Employee file columns
const (
	employeeColUID = iota
	employeeColFirstName
	employeeColLastName
	employeeColEmail
	employeeColUnit
	employeeColSupervisor
	employeeColManages
	employeeColumns
)

// LoadEmployees reads `UID, First Name, Last Name, Email, Unit Name, Supervisor UID, Manages Unit (Y/N)`
// rows. Employees are matched by UID and users by email. Supervisors and unit managers are linked in a
// second pass so a supervisor may appear after the people they supervise.
func LoadEmployees(db *pop.Connection, r io.Reader) (Result, error) {
	result := Result{Kind: KindEmployees}

	rows, err := readRows(r, employeeColumns)
	if err != nil {
		return result, err
	}

	var created []row
	eachRow(db, &result, rows, func(tx *pop.Connection, r row) error {
		if err := upsertEmployee(tx, r); err != nil {
			return err
		}
		created = append(created, r)
		return nil
	})

	for _, r := range created {
		if r.get(employeeColSupervisor) == "" && !isYes(r.get(employeeColManages)) {
			continue
		}
		err := db.Transaction(func(tx *pop.Connection) error {
			return linkEmployee(tx, r)
		})
		if err != nil {
			result.Created--
			result.fail(r.line, err)
		}
	}

	return result, nil
}

func upsertEmployee(tx *pop.Connection, r row) error {
	uid := r.get(employeeColUID)
	if uid == "" {
		return errors.New("UID is required")
	}
	email := strings.ToLower(r.get(employeeColEmail))
	if email == "" {
		return errors.New("email is required")
	}

	unitName := r.get(employeeColUnit)
	var unit models.Unit
	if err := unit.FindByName(tx, unitName); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("unit %q not found", unitName)
		}
		return err
	}

	var user models.User
	if err := user.FindByEmail(tx, email); err != nil {
		if !isNotFound(err) {
			return err
		}
		user = models.User{
			Email:     email,
			FirstName: r.get(employeeColFirstName),
			LastName:  r.get(employeeColLastName),
			StaffID:   uid,
		}
		if err := user.Create(tx); err != nil {
			return errors.Wrapf(err, "error creating user %s", email)
		}
	} else {
		user.FirstName = r.get(employeeColFirstName)
		user.LastName = r.get(employeeColLastName)
		user.StaffID = uid
		if err := user.Update(tx); err != nil {
			return errors.Wrapf(err, "error updating user %s", email)
		}
	}

	var employee models.Employee
	if err := employee.FindByUID(tx, uid); err == nil {
		employee.UserID = user.ID
		employee.UnitID = unit.ID
		employee.Active = true
		return errors.Wrapf(employee.Update(tx), "error updating employee %s", uid)
	} else if !isNotFound(err) {
		return err
	}

	employee = models.Employee{
		UID:    uid,
		UserID: user.ID,
		UnitID: unit.ID,
		Active: true,
	}
	return errors.Wrapf(employee.Create(tx), "error creating employee %s", uid)
}

func linkEmployee(tx *pop.Connection, r row) error {
	var employee models.Employee
	if err := employee.FindByUID(tx, r.get(employeeColUID)); err != nil {
		return err
	}

	if supervisorUID := r.get(employeeColSupervisor); supervisorUID != "" {
		var supervisor models.Employee
		if err := supervisor.FindByUID(tx, supervisorUID); err != nil {
			if isNotFound(err) {
				return api.NewAppError(fmt.Errorf("supervisor %q not found", supervisorUID),
					api.ErrorEmployeeNotFound, api.CategoryUser)
			}
			return err
		}
		employee.SupervisorID = nulls.NewUUID(supervisor.ID)
		if err := employee.Update(tx); err != nil {
			return errors.Wrapf(err, "error setting supervisor of %s", employee.UID)
		}
	}

	if isYes(r.get(employeeColManages)) {
		unit := employee.Unit
		unit.ManagerID = nulls.NewUUID(employee.ID)
		if err := unit.Update(tx); err != nil {
			return errors.Wrapf(err, "error setting manager of unit %s", unit.Name)
		}
	}

	return nil
}

func isNotFound(err error) bool {
	var appErr *api.AppError
	return errors.As(err, &appErr) && appErr.Key == api.ErrorNoRows
}
