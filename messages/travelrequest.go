package messages

import (
	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"
	"github.com/gofrs/uuid"

	"github.com/silinternational/terra/api"
	"github.com/silinternational/terra/models"
	"github.com/silinternational/terra/notifications"
)

// RequestClosedSend tells the traveler and everyone who approved the request that it was closed
func RequestClosedSend(tx *pop.Connection, t models.TravelRequest) error {
	data := newEmailMessageData()
	data.addTravelRequestData(tx, &t)
	data["allocations"] = api.FormatDollars(t.AllocationsTotal(tx))
	data["estimated"] = api.FormatDollars(t.EstimatedTotal(tx))
	data["expenditures"] = api.FormatDollars(t.ExpendituresTotal(tx))

	recipients := models.Employees{t.Traveler}
	seen := map[uuid.UUID]bool{t.TravelerID: true}
	for _, a := range t.Approvals {
		if seen[a.ApprovedByID] {
			continue
		}
		seen[a.ApprovedByID] = true
		recipients = append(recipients, a.ApprovedBy(tx))
	}

	subject := "Travel request closed: " + t.String()
	notns := make(models.Notifications, len(recipients))
	for i, r := range recipients {
		d := data.copy()
		d["recipientFirstName"] = r.User.FirstName

		body, err := d.renderHTML(notifications.TemplateRequestClosed)
		if err != nil {
			return err
		}
		notns[i] = models.Notification{
			TravelRequestID: nulls.NewUUID(t.ID),
			Event:           EventRequestClosed,
			Subject:         subject,
			Body:            body,
			ToName:          r.Name(),
			ToEmail:         r.User.Email,
		}
	}

	return deliver(tx, notns)
}
