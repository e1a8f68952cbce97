package models

import (
	"time"

	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/silinternational/terra/api"
)

type Notifications []Notification

// Notification is an email sent, or to be sent, to one recipient
type Notification struct {
	ID              uuid.UUID  `db:"id"`
	TravelRequestID nulls.UUID `db:"travel_request_id"`
	Event           string     `db:"event" validate:"required"`
	Subject         string     `db:"subject" validate:"required"`
	Body            string     `db:"body" validate:"required"`
	ToName          string     `db:"to_name"`
	ToEmail         string     `db:"to_email" validate:"required,email"`
	SendAttempts    int        `db:"send_attempts"`
	SentAtUTC       nulls.Time `db:"sent_at_utc"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (n *Notification) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(n), nil
}

// Create stores the Notification data as a new record in the database.
func (n *Notification) Create(tx *pop.Connection) error {
	return create(tx, n)
}

// Update writes the Notification data to an existing database record.
func (n *Notification) Update(tx *pop.Connection) error {
	return update(tx, n)
}

func (n *Notification) GetID() uuid.UUID {
	return n.ID
}

func (n *Notification) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, n, id)
}

// RecordAttempt counts a send attempt and, if it succeeded, the time it was sent
func (n *Notification) RecordAttempt(tx *pop.Connection, sent bool) error {
	n.SendAttempts++
	if sent {
		n.SentAtUTC = nulls.NewTime(time.Now().UTC())
	}
	return n.Update(tx)
}

// FindUnsent loads notifications that have not been sent and have had fewer than maxAttempts send attempts
func (ns *Notifications) FindUnsent(tx *pop.Connection, maxAttempts int) error {
	err := tx.Where("sent_at_utc is null and send_attempts < ?", maxAttempts).Order("created_at asc").All(ns)
	return appErrorFromDB(err, api.ErrorQueryFailure)
}

// FindByTravelRequest loads the notifications about a travel request, oldest first
func (ns *Notifications) FindByTravelRequest(tx *pop.Connection, id uuid.UUID) error {
	err := tx.Where("travel_request_id = ?", id).Order("created_at asc").All(ns)
	return appErrorFromDB(err, api.ErrorQueryFailure)
}
