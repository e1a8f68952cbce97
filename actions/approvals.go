package actions

import (
	"errors"

	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/terra/api"
	"github.com/silinternational/terra/domain"
	"github.com/silinternational/terra/models"
)

// swagger:operation POST /travel-requests/{id}/approvals Approvals ApprovalsCreate
// ApprovalsCreate
//
// record an approval by the current user. Fund managers who are not above the traveler may only record a
// Funding approval charged to a fund they manage.
// ---
//
//	parameters:
//	  - name: id
//	    in: path
//	    required: true
//	    description: travel request ID
//	  - name: approval input
//	    in: body
//	    required: true
//	    schema:
//	      "$ref": "#/definitions/ApprovalCreateInput"
//	responses:
//	  '201':
//	    description: the new Approval
//	    schema:
//	      "$ref": "#/definitions/Approval"
func approvalsCreate(c buffalo.Context) error {
	t, err := getReferencedResource[models.TravelRequest](c, domain.TypeTravelRequest)
	if err != nil {
		return reportError(c, err)
	}

	var input api.ApprovalCreateInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	tx := models.Tx(c)
	if !t.CanApprove(tx, models.CurrentUser(c), input) {
		err := errors.New("actor may not record this approval")
		return reportError(c, api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryForbidden))
	}

	approver, err := currentEmployee(c)
	if err != nil {
		return reportError(c, err)
	}

	approval, err := t.AddApproval(tx, approver, input)
	if err != nil {
		return reportError(c, err)
	}
	return renderCreated(c, approval.ConvertToAPI(tx))
}

// swagger:operation DELETE /approvals/{id} Approvals ApprovalsDelete
// ApprovalsDelete
//
// withdraw an approval
// ---
//
//	parameters:
//	  - name: id
//	    in: path
//	    required: true
//	    description: approval ID
//	responses:
//	  '204':
//	    description: OK but no content in response
func approvalsDelete(c buffalo.Context) error {
	approval, err := getReferencedResource[models.Approval](c, domain.TypeApproval)
	if err != nil {
		return reportError(c, err)
	}
	if err := approval.Destroy(models.Tx(c)); err != nil {
		return reportError(c, err)
	}
	return renderNoContent(c)
}
