package loader

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gobuffalo/pop/v6"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/silinternational/terra/api"
	"github.com/silinternational/terra/domain"
	"github.com/silinternational/terra/models"
)

// Travel data file columns
const (
	travelColTraveler = iota
	travelColActivity
	travelColActivityStart
	travelColActivityEnd
	travelColCity
	travelColState
	travelColCountry
	travelColDeparture
	travelColReturn
	travelColDaysOOO
	travelColAdministrative
	travelColExpenseType
	travelColExpenseTotal
	travelColumns
)

// date layouts accepted in travel data files
var dateLayouts = []string{domain.DateFormat, "1/2/2006", "01/02/2006"}

// LoadTravelData reads one travel request per row. Rows naming the same activity with the same dates share
// one Activity. When an expense type is given, the row also adds one estimated expense.
func LoadTravelData(db *pop.Connection, r io.Reader) (Result, error) {
	result := Result{Kind: KindTravelData}

	rows, err := readRows(r, travelColumns)
	if err != nil {
		return result, err
	}

	eachRow(db, &result, rows, createTravelRequest)

	return result, nil
}

func createTravelRequest(tx *pop.Connection, r row) error {
	uid := r.get(travelColTraveler)
	var traveler models.Employee
	if err := traveler.FindByUID(tx, uid); err != nil {
		if isNotFound(err) {
			return api.NewAppError(fmt.Errorf("traveler %q not found", uid), api.ErrorEmployeeNotFound,
				api.CategoryUser)
		}
		return err
	}

	activity := models.Activity{
		Name:    r.get(travelColActivity),
		City:    r.get(travelColCity),
		State:   r.get(travelColState),
		Country: r.get(travelColCountry),
	}
	if activity.Country == "" {
		activity.Country = domain.Env.HomeCountry
	}

	var err error
	if activity.Start, err = parseDate("activity start", r.get(travelColActivityStart)); err != nil {
		return err
	}
	if activity.End, err = parseDate("activity end", r.get(travelColActivityEnd)); err != nil {
		return err
	}
	if err := activity.FindOrCreate(tx); err != nil {
		return errors.Wrapf(err, "error saving activity %s", activity.Name)
	}

	t := models.TravelRequest{
		TravelerID:     traveler.ID,
		ActivityID:     activity.ID,
		Administrative: isYes(r.get(travelColAdministrative)),
	}
	if t.DepartureDate, err = parseDate("departure date", r.get(travelColDeparture)); err != nil {
		return err
	}
	if t.ReturnDate, err = parseDate("return date", r.get(travelColReturn)); err != nil {
		return err
	}
	if days := r.get(travelColDaysOOO); days != "" {
		if t.DaysOOO, err = strconv.Atoi(days); err != nil {
			return fmt.Errorf("invalid days out of office %q", days)
		}
	}
	if err := t.Create(tx); err != nil {
		return errors.Wrapf(err, "error creating travel request for %s", uid)
	}

	expenseType := r.get(travelColExpenseType)
	if expenseType == "" {
		return nil
	}
	total, err := decimal.NewFromString(r.get(travelColExpenseTotal))
	if err != nil {
		return fmt.Errorf("invalid estimated total %q", r.get(travelColExpenseTotal))
	}
	input := api.EstimatedExpenseInput{
		Type:  api.ExpenseType(expenseType),
		Total: api.Currency{Decimal: total},
	}
	_, err = t.AddEstimatedExpense(tx, input)
	return errors.Wrap(err, "error adding estimated expense")
}

func parseDate(field, value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, api.NewAppError(fmt.Errorf("invalid %s %q", field, value), api.ErrorInvalidDate,
		api.CategoryUser)
}
