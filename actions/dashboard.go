package actions

import (
	"net/url"

	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/terra/api"
	"github.com/silinternational/terra/models"
)

const dashboardRequestLimit = "10"

// swagger:operation GET /dashboard Dashboard Dashboard
// Dashboard
//
// landing data for the current user: their units, funds, and most recent travel requests
// ---
//
//	responses:
//	  '200':
//	    description: the dashboard
//	    schema:
//	      "$ref": "#/definitions/Dashboard"
func dashboardHandler(c buffalo.Context) error {
	tx := models.Tx(c)
	actor := models.CurrentUser(c)

	units, err := models.UnitsViewableBy(tx, actor)
	if err != nil {
		return reportError(c, err)
	}

	funds, err := models.FundsViewableBy(tx, actor)
	if err != nil {
		return reportError(c, err)
	}

	q := api.NewQueryParams(url.Values{"limit": {dashboardRequestLimit}})
	requests, err := models.TravelRequestsViewableBy(tx, actor, q)
	if err != nil {
		return reportError(c, err)
	}

	dashboard := api.Dashboard{
		User:           actor.ConvertToAPI(tx),
		Units:          units.ConvertToAPI(tx),
		Funds:          funds.ConvertToAPI(),
		TravelRequests: requests.ConvertToAPI(tx),
	}
	if employee, ok := actor.Employee(tx); ok {
		e := employee.ConvertToAPI(tx)
		dashboard.Employee = &e
	}

	return renderOk(c, dashboard)
}
