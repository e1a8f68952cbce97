package actions

import (
	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/terra/api"
	"github.com/silinternational/terra/domain"
	"github.com/silinternational/terra/models"
)

// swagger:operation POST /travel-requests/{id}/estimated-expenses Expenses EstimatedExpensesCreate
// EstimatedExpensesCreate
//
// add a projected cost to an open travel request
// ---
//
//	parameters:
//	  - name: id
//	    in: path
//	    required: true
//	    description: travel request ID
//	  - name: expense input
//	    in: body
//	    required: true
//	    schema:
//	      "$ref": "#/definitions/EstimatedExpenseInput"
//	responses:
//	  '201':
//	    description: the new EstimatedExpense
//	    schema:
//	      "$ref": "#/definitions/EstimatedExpense"
func estimatedExpensesCreate(c buffalo.Context) error {
	t, err := getReferencedResource[models.TravelRequest](c, domain.TypeTravelRequest)
	if err != nil {
		return reportError(c, err)
	}

	var input api.EstimatedExpenseInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	expense, err := t.AddEstimatedExpense(models.Tx(c), input)
	if err != nil {
		return reportError(c, err)
	}
	return renderCreated(c, expense.ConvertToAPI())
}

// swagger:operation PUT /estimated-expenses/{id} Expenses EstimatedExpensesUpdate
// EstimatedExpensesUpdate
//
// change the type and total of an estimated expense
// ---
//
//	parameters:
//	  - name: id
//	    in: path
//	    required: true
//	    description: estimated expense ID
//	  - name: expense input
//	    in: body
//	    required: true
//	    schema:
//	      "$ref": "#/definitions/EstimatedExpenseInput"
//	responses:
//	  '200':
//	    description: the updated EstimatedExpense
//	    schema:
//	      "$ref": "#/definitions/EstimatedExpense"
func estimatedExpensesUpdate(c buffalo.Context) error {
	expense, err := getReferencedResource[models.EstimatedExpense](c, domain.TypeEstimatedExpense)
	if err != nil {
		return reportError(c, err)
	}

	var input api.EstimatedExpenseInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	if err := expense.UpdateFromInput(models.Tx(c), input); err != nil {
		return reportError(c, err)
	}
	return renderOk(c, expense.ConvertToAPI())
}

// swagger:operation DELETE /estimated-expenses/{id} Expenses EstimatedExpensesDelete
// EstimatedExpensesDelete
//
// remove an estimated expense
// ---
//
//	parameters:
//	  - name: id
//	    in: path
//	    required: true
//	    description: estimated expense ID
//	responses:
//	  '204':
//	    description: OK but no content in response
func estimatedExpensesDelete(c buffalo.Context) error {
	expense, err := getReferencedResource[models.EstimatedExpense](c, domain.TypeEstimatedExpense)
	if err != nil {
		return reportError(c, err)
	}
	if err := expense.Destroy(models.Tx(c)); err != nil {
		return reportError(c, err)
	}
	return renderNoContent(c)
}

// swagger:operation POST /travel-requests/{id}/actual-expenses Expenses ActualExpensesCreate
// ActualExpensesCreate
//
// record a cost paid from a fund. Allowed after the request is closed.
// ---
//
//	parameters:
//	  - name: id
//	    in: path
//	    required: true
//	    description: travel request ID
//	  - name: expense input
//	    in: body
//	    required: true
//	    schema:
//	      "$ref": "#/definitions/ActualExpenseInput"
//	responses:
//	  '201':
//	    description: the new ActualExpense
//	    schema:
//	      "$ref": "#/definitions/ActualExpense"
func actualExpensesCreate(c buffalo.Context) error {
	t, err := getReferencedResource[models.TravelRequest](c, domain.TypeTravelRequest)
	if err != nil {
		return reportError(c, err)
	}

	var input api.ActualExpenseInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	tx := models.Tx(c)
	expense, err := t.AddActualExpense(tx, input)
	if err != nil {
		return reportError(c, err)
	}
	return renderCreated(c, expense.ConvertToAPI(tx))
}

// swagger:operation PUT /actual-expenses/{id} Expenses ActualExpensesUpdate
// ActualExpensesUpdate
//
// change an actual expense
// ---
//
//	parameters:
//	  - name: id
//	    in: path
//	    required: true
//	    description: actual expense ID
//	  - name: expense input
//	    in: body
//	    required: true
//	    schema:
//	      "$ref": "#/definitions/ActualExpenseInput"
//	responses:
//	  '200':
//	    description: the updated ActualExpense
//	    schema:
//	      "$ref": "#/definitions/ActualExpense"
func actualExpensesUpdate(c buffalo.Context) error {
	expense, err := getReferencedResource[models.ActualExpense](c, domain.TypeActualExpense)
	if err != nil {
		return reportError(c, err)
	}

	var input api.ActualExpenseInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	tx := models.Tx(c)
	if err := expense.UpdateFromInput(tx, input); err != nil {
		return reportError(c, err)
	}
	return renderOk(c, expense.ConvertToAPI(tx))
}

// swagger:operation DELETE /actual-expenses/{id} Expenses ActualExpensesDelete
// ActualExpensesDelete
//
// remove an actual expense
// ---
//
//	parameters:
//	  - name: id
//	    in: path
//	    required: true
//	    description: actual expense ID
//	responses:
//	  '204':
//	    description: OK but no content in response
func actualExpensesDelete(c buffalo.Context) error {
	expense, err := getReferencedResource[models.ActualExpense](c, domain.TypeActualExpense)
	if err != nil {
		return reportError(c, err)
	}
	if err := expense.Destroy(models.Tx(c)); err != nil {
		return reportError(c, err)
	}
	return renderNoContent(c)
}
