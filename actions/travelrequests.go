package actions

import (
	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/terra/api"
	"github.com/silinternational/terra/domain"
	"github.com/silinternational/terra/models"
)

// swagger:operation GET /travel-requests TravelRequests TravelRequestsList
// TravelRequestsList
//
// list the travel requests the current user may view, newest departure first
// ---
//
//	parameters:
//	  - name: filter
//	    in: query
//	    required: false
//	    description: "closed:true|false, administrative:true|false"
//	  - name: limit
//	    in: query
//	    required: false
//	  - name: page
//	    in: query
//	    required: false
//	responses:
//	  '200':
//	    description: a list of TravelRequests
//	    schema:
//	      type: array
//	      items:
//	        "$ref": "#/definitions/TravelRequest"
func travelRequestsList(c buffalo.Context) error {
	tx := models.Tx(c)
	requests, err := models.TravelRequestsViewableBy(tx, models.CurrentUser(c), api.NewQueryParams(c.Params()))
	if err != nil {
		return reportError(c, err)
	}
	return renderOk(c, requests.ConvertToAPI(tx))
}

// swagger:operation GET /travel-requests/{id} TravelRequests TravelRequestsView
// TravelRequestsView
//
// view a travel request with its approvals, expenses, and vacations
// ---
//
//	parameters:
//	  - name: id
//	    in: path
//	    required: true
//	    description: travel request ID
//	responses:
//	  '200':
//	    description: a TravelRequest
//	    schema:
//	      "$ref": "#/definitions/TravelRequest"
func travelRequestsView(c buffalo.Context) error {
	t, err := getReferencedResource[models.TravelRequest](c, domain.TypeTravelRequest)
	if err != nil {
		return reportError(c, err)
	}
	return renderOk(c, t.ConvertToAPI(models.Tx(c)))
}

// swagger:operation PUT /travel-requests/{id}/close TravelRequests TravelRequestsClose
// TravelRequestsClose
//
// close a travel request. Closing an already closed request has no effect.
// ---
//
//	parameters:
//	  - name: id
//	    in: path
//	    required: true
//	    description: travel request ID
//	responses:
//	  '200':
//	    description: the closed TravelRequest
//	    schema:
//	      "$ref": "#/definitions/TravelRequest"
func travelRequestsClose(c buffalo.Context) error {
	t, err := getReferencedResource[models.TravelRequest](c, domain.TypeTravelRequest)
	if err != nil {
		return reportError(c, err)
	}

	tx := models.Tx(c)
	if err := t.Close(tx); err != nil {
		return reportError(c, err)
	}
	return renderOk(c, t.ConvertToAPI(tx))
}

// swagger:operation POST /travel-requests/{id}/vacations TravelRequests VacationsCreate
// VacationsCreate
//
// record personal days taken during the trip
// ---
//
//	parameters:
//	  - name: id
//	    in: path
//	    required: true
//	    description: travel request ID
//	  - name: vacation input
//	    in: body
//	    required: true
//	    schema:
//	      "$ref": "#/definitions/VacationInput"
//	responses:
//	  '201':
//	    description: the new Vacation
//	    schema:
//	      "$ref": "#/definitions/Vacation"
func vacationsCreate(c buffalo.Context) error {
	t, err := getReferencedResource[models.TravelRequest](c, domain.TypeTravelRequest)
	if err != nil {
		return reportError(c, err)
	}

	var input api.VacationInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	vacation, err := t.AddVacation(models.Tx(c), input)
	if err != nil {
		return reportError(c, err)
	}
	return renderCreated(c, vacation.ConvertToAPI())
}
