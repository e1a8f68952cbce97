package models

import (
	"time"

	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/silinternational/terra/api"
	"github.com/silinternational/terra/domain"
)

type Vacations []Vacation

// Vacation is a span of personal days taken during a trip. It is not required to fall inside the travel dates.
type Vacation struct {
	ID              uuid.UUID `db:"id"`
	TravelRequestID uuid.UUID `db:"travel_request_id" validate:"required"`
	Start           time.Time `db:"start_date" validate:"required"`
	End             time.Time `db:"end_date" validate:"required"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (v *Vacation) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(v), nil
}

func (v *Vacation) Create(tx *pop.Connection) error {
	return create(tx, v)
}

// Days returns the number of days in the vacation, counting both ends
func (v *Vacation) Days() int {
	return int(domain.BeginningOfDay(v.End).Sub(domain.BeginningOfDay(v.Start))/domain.DurationDay) + 1
}

func (v *Vacation) ConvertToAPI() api.Vacation {
	return api.Vacation{
		ID:              v.ID,
		TravelRequestID: v.TravelRequestID,
		Start:           v.Start.Format(domain.DateFormat),
		End:             v.End.Format(domain.DateFormat),
	}
}

func (vs Vacations) ConvertToAPI() api.Vacations {
	vacations := make(api.Vacations, len(vs))
	for i := range vs {
		vacations[i] = vs[i].ConvertToAPI()
	}
	return vacations
}
