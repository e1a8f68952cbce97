package actions

import (
	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/terra/domain"
	"github.com/silinternational/terra/models"
)

// swagger:operation GET /units Units UnitsList
// UnitsList
//
// list the units the current user may view
// ---
//
//	responses:
//	  '200':
//	    description: a list of Units
//	    schema:
//	      type: array
//	      items:
//	        "$ref": "#/definitions/Unit"
func unitsList(c buffalo.Context) error {
	tx := models.Tx(c)
	units, err := models.UnitsViewableBy(tx, models.CurrentUser(c))
	if err != nil {
		return reportError(c, err)
	}
	return renderOk(c, units.ConvertToAPI(tx))
}

// swagger:operation GET /units/{id} Units UnitsView
// UnitsView
//
// view a unit with its manager and subunits
// ---
//
//	parameters:
//	  - name: id
//	    in: path
//	    required: true
//	    description: unit ID
//	responses:
//	  '200':
//	    description: a Unit
//	    schema:
//	      "$ref": "#/definitions/Unit"
func unitsView(c buffalo.Context) error {
	unit, err := getReferencedResource[models.Unit](c, domain.TypeUnit)
	if err != nil {
		return reportError(c, err)
	}
	return renderOk(c, unit.ConvertToAPI(models.Tx(c)))
}

// swagger:operation GET /units/{id}/report Units UnitsReport
// UnitsReport
//
// allocations and expenditures of every employee in the unit and its subunits
// ---
//
//	parameters:
//	  - name: id
//	    in: path
//	    required: true
//	    description: unit ID
//	  - name: start
//	    in: query
//	    required: false
//	    description: yyyy-mm-dd, defaults to the start of the current fiscal year
//	  - name: end
//	    in: query
//	    required: false
//	    description: yyyy-mm-dd, defaults to the end of the current fiscal year
//	responses:
//	  '200':
//	    description: a Report, or a CSV file if the request accepts text/csv
//	    schema:
//	      "$ref": "#/definitions/Report"
func unitsReport(c buffalo.Context) error {
	unit, err := getReferencedResource[models.Unit](c, domain.TypeUnit)
	if err != nil {
		return reportError(c, err)
	}

	start, end, err := reportRange(c)
	if err != nil {
		return reportError(c, err)
	}

	report, err := models.UnitReport(models.Tx(c), *unit, start, end)
	if err != nil {
		return reportError(c, err)
	}
	return renderReport(c, domain.TypeUnit, report)
}

// swagger:operation DELETE /units/{id} Units UnitsDelete
// UnitsDelete
//
// delete a unit that has no subunits and no funds
// ---
//
//	parameters:
//	  - name: id
//	    in: path
//	    required: true
//	    description: unit ID
//	responses:
//	  '204':
//	    description: OK but no content in response
func unitsDelete(c buffalo.Context) error {
	unit, err := getReferencedResource[models.Unit](c, domain.TypeUnit)
	if err != nil {
		return reportError(c, err)
	}
	if err := unit.Destroy(models.Tx(c)); err != nil {
		return reportError(c, err)
	}
	return renderNoContent(c)
}
