package actions

import (
	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/terra/domain"
	"github.com/silinternational/terra/models"
)

// swagger:operation GET /employees/{id} Employees EmployeesView
// EmployeesView
//
// view an employee
// ---
//
//	parameters:
//	  - name: id
//	    in: path
//	    required: true
//	    description: employee ID
//	responses:
//	  '200':
//	    description: an Employee
//	    schema:
//	      "$ref": "#/definitions/Employee"
func employeesView(c buffalo.Context) error {
	employee, err := getReferencedResource[models.Employee](c, domain.TypeEmployee)
	if err != nil {
		return reportError(c, err)
	}
	return renderOk(c, employee.ConvertToAPI(models.Tx(c)))
}
