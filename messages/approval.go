package messages

import (
	"fmt"

	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"

	"github.com/silinternational/terra/models"
	"github.com/silinternational/terra/notifications"
)

// ApprovalCreatedSend tells the traveler that their request received an approval
func ApprovalCreatedSend(tx *pop.Connection, approval models.Approval) error {
	approval.LoadTravelRequest(tx, false)
	t := approval.TravelRequest

	data := newEmailMessageData()
	data.addTravelRequestData(tx, &t)

	approver := approval.ApprovedBy(tx)
	data["approverName"] = approver.Name()
	data["approvalType"] = string(approval.Type)
	data["amount"] = ""
	data["fundName"] = ""
	if fund, ok := approval.Fund(tx); ok && approval.Amount.IsPositive() {
		data["amount"] = approval.AmountDollars()
		data["fundName"] = fund.String()
	}
	data["approved"] = t.Approved(tx)

	body, err := data.renderHTML(notifications.TemplateApprovalCreated)
	if err != nil {
		return err
	}

	notn := models.Notification{
		TravelRequestID: nulls.NewUUID(t.ID),
		Event:           EventApprovalCreated,
		Subject:         fmt.Sprintf("%s approval for %s", approval.Type, t.Activity.Name),
		Body:            body,
		ToName:          t.Traveler.Name(),
		ToEmail:         t.Traveler.User.Email,
	}
	return deliver(tx, models.Notifications{notn})
}
