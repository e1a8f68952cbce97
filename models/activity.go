package models

import (
	"time"

	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/silinternational/terra/api"
	"github.com/silinternational/terra/domain"
)

type Activities []Activity

// Activity is the event or purpose of a trip, such as a conference
type Activity struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name" validate:"required"`
	Start     time.Time `db:"start_date" validate:"required"`
	End       time.Time `db:"end_date" validate:"required"`
	City      string    `db:"city"`
	State     string    `db:"state"`
	Country   string    `db:"country" validate:"required"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// String returns the activity name
func (a Activity) String() string {
	return a.Name
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (a *Activity) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(a), nil
}

func (a *Activity) Create(tx *pop.Connection) error {
	return create(tx, a)
}

func (a *Activity) Update(tx *pop.Connection) error {
	return update(tx, a)
}

func (a *Activity) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, a, id)
}

// FindOrCreate loads the activity with the same name and dates, creating it if there is none
func (a *Activity) FindOrCreate(tx *pop.Connection) error {
	var existing Activity
	err := tx.Where("name = ? and start_date = ? and end_date = ?", a.Name, a.Start, a.End).First(&existing)
	if err == nil {
		*a = existing
		return nil
	}
	if domain.IsOtherThanNoRows(err) {
		return appErrorFromDB(err, api.ErrorQueryFailure)
	}
	return a.Create(tx)
}

// IsInternational is true if the activity is outside the configured home country
func (a *Activity) IsInternational() bool {
	return a.Country != domain.Env.HomeCountry
}

func (a *Activity) ConvertToAPI() api.Activity {
	return api.Activity{
		ID:      a.ID,
		Name:    a.Name,
		Start:   a.Start.Format(domain.DateFormat),
		End:     a.End.Format(domain.DateFormat),
		City:    a.City,
		State:   a.State,
		Country: a.Country,
	}
}
