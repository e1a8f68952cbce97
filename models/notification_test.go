package models

import (
	"testing"

	"github.com/gobuffalo/nulls"
	"github.com/gofrs/uuid"
)

func (ms *ModelSuite) TestNotification_Validate() {
	tests := []struct {
		name     string
		notn     Notification
		errField string
	}{
		{
			name: "minimum",
			notn: Notification{Event: "approval", Subject: "s", Body: "b", ToEmail: "a@example.com"},
		},
		{
			name:     "missing event",
			notn:     Notification{Subject: "s", Body: "b", ToEmail: "a@example.com"},
			errField: "Notification.Event",
		},
		{
			name:     "bad email",
			notn:     Notification{Event: "approval", Subject: "s", Body: "b", ToEmail: "nobody"},
			errField: "Notification.ToEmail",
		},
	}
	for _, tt := range tests {
		ms.T().Run(tt.name, func(t *testing.T) {
			vErr, _ := tt.notn.Validate(ms.DB)
			if tt.errField == "" {
				ms.False(vErr.HasAny(), "unexpected error: %s", vErr)
				return
			}
			ms.Contains(vErr.Keys(), tt.errField)
		})
	}
}

func (ms *ModelSuite) TestNotification_RecordAttempt() {
	f := CreateHierarchyFixtures(ms.DB)
	t := CreateTravelFixture(ms.DB, f.Employees[FixtureEmployeeDeveloper].ID, TravelFixtureConfig{})

	sent := Notification{
		TravelRequestID: nulls.NewUUID(t.ID),
		Event:           "approval",
		Subject:         "s",
		Body:            "b",
		ToEmail:         "a@example.com",
	}
	ms.NoError(sent.Create(ms.DB))
	unsent := sent
	unsent.ID = uuid.Nil
	ms.NoError(unsent.Create(ms.DB))
	other := sent
	other.ID = uuid.Nil
	other.TravelRequestID = nulls.UUID{}
	ms.NoError(other.Create(ms.DB))

	ms.NoError(sent.RecordAttempt(ms.DB, true))
	ms.NoError(unsent.RecordAttempt(ms.DB, false))
	ms.NoError(unsent.RecordAttempt(ms.DB, false))

	ms.Equal(1, sent.SendAttempts)
	ms.True(sent.SentAtUTC.Valid)
	ms.Equal(2, unsent.SendAttempts)
	ms.False(unsent.SentAtUTC.Valid)

	var ns Notifications
	ms.NoError(ns.FindUnsent(ms.DB, 3))
	ms.Len(ns, 2)

	ms.NoError(ns.FindUnsent(ms.DB, 2))
	ms.Len(ns, 1)
	ms.Equal(other.ID, ns[0].ID)

	ms.NoError(ns.FindByTravelRequest(ms.DB, t.ID))
	ms.Len(ns, 2)
}
