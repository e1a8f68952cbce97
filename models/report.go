package models

import (
	"sort"
	"time"

	"github.com/gobuffalo/pop/v6"
	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"

	"github.com/silinternational/terra/api"
	"github.com/silinternational/terra/domain"
)

// Report is an allocation and expenditure rollup over a date range, with one row per employee
type Report struct {
	Title      string
	Start      time.Time
	End        time.Time
	FiscalYear int
	Rows       []ReportRow
	Totals     ReportRow

	// WithCap is true for unit reports, which compare professional development allocations to each
	// employee's cap
	WithCap bool
}

type ReportRow struct {
	EmployeeID    uuid.UUID
	Employee      string
	ProfDevAlloc  decimal.Decimal
	AdminAlloc    decimal.Decimal
	TotalAlloc    decimal.Decimal
	ProfDevExpend decimal.Decimal
	AdminExpend   decimal.Decimal
	TotalExpend   decimal.Decimal
	ProfDevCap    decimal.Decimal
}

// ProfDevRemaining is the cap less the approved professional development amount
func (r ReportRow) ProfDevRemaining() decimal.Decimal {
	return r.ProfDevCap.Sub(r.ProfDevAlloc)
}

func (r *ReportRow) add(other ReportRow) {
	r.ProfDevAlloc = r.ProfDevAlloc.Add(other.ProfDevAlloc)
	r.AdminAlloc = r.AdminAlloc.Add(other.AdminAlloc)
	r.TotalAlloc = r.TotalAlloc.Add(other.TotalAlloc)
	r.ProfDevExpend = r.ProfDevExpend.Add(other.ProfDevExpend)
	r.AdminExpend = r.AdminExpend.Add(other.AdminExpend)
	r.TotalExpend = r.TotalExpend.Add(other.TotalExpend)
	r.ProfDevCap = r.ProfDevCap.Add(other.ProfDevCap)
}

// reportEntry is one travel request's contribution to a report
type reportEntry struct {
	EmployeeID     uuid.UUID
	Administrative bool
	Alloc          decimal.Decimal
	Expend         decimal.Decimal
}

// aggregate sums entries per employee and across all employees. Every employee in `employees` gets a row, even
// with no entries. Rows are ordered by name, then ID.
func aggregate(entries []reportEntry, employees map[uuid.UUID]ReportRow) ([]ReportRow, ReportRow) {
	byEmployee := map[uuid.UUID]*ReportRow{}
	for id, r := range employees {
		row := r
		row.EmployeeID = id
		byEmployee[id] = &row
	}

	for _, e := range entries {
		row, ok := byEmployee[e.EmployeeID]
		if !ok {
			row = &ReportRow{EmployeeID: e.EmployeeID}
			byEmployee[e.EmployeeID] = row
		}
		if e.Administrative {
			row.AdminAlloc = row.AdminAlloc.Add(e.Alloc)
			row.AdminExpend = row.AdminExpend.Add(e.Expend)
		} else {
			row.ProfDevAlloc = row.ProfDevAlloc.Add(e.Alloc)
			row.ProfDevExpend = row.ProfDevExpend.Add(e.Expend)
		}
		row.TotalAlloc = row.TotalAlloc.Add(e.Alloc)
		row.TotalExpend = row.TotalExpend.Add(e.Expend)
	}

	rows := make([]ReportRow, 0, len(byEmployee))
	for _, r := range byEmployee {
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Employee != rows[j].Employee {
			return rows[i].Employee < rows[j].Employee
		}
		return rows[i].EmployeeID.String() < rows[j].EmployeeID.String()
	})

	totals := ReportRow{Employee: "Totals"}
	for _, r := range rows {
		totals.add(r)
	}

	return rows, totals
}

// UnitReport rolls up the travel requests of every employee in the unit and all units below it. A request
// is in scope if its departure date or its activity start date falls within [start, end].
func UnitReport(tx *pop.Connection, unit Unit, start, end time.Time) (Report, error) {
	unitIDs, err := unit.DescendantIDs(tx)
	if err != nil {
		return Report{}, appErrorFromDB(err, api.ErrorQueryFailure)
	}
	unitIDs = append([]uuid.UUID{unit.ID}, unitIDs...)

	var employees Employees
	if err := tx.Eager("User").Where("unit_id in (?)", uuidsToAny(unitIDs)...).All(&employees); err != nil {
		return Report{}, appErrorFromDB(err, api.ErrorQueryFailure)
	}

	rows := map[uuid.UUID]ReportRow{}
	travelerIDs := make([]uuid.UUID, 0, len(employees))
	for _, e := range employees {
		travelerIDs = append(travelerIDs, e.ID)
		if !e.Active {
			continue
		}
		rows[e.ID] = ReportRow{Employee: e.Name(), ProfDevCap: e.ProfDevCap(end)}
	}

	report := Report{
		Title:      unit.Name,
		Start:      start,
		End:        end,
		FiscalYear: domain.FiscalYear(end),
		WithCap:    true,
	}

	if len(travelerIDs) == 0 {
		report.Rows, report.Totals = aggregate(nil, rows)
		return report, nil
	}

	var requests TravelRequests
	q := inDateRange(tx.Where("traveler_id in (?)", uuidsToAny(travelerIDs)...), start, end)
	if err := q.All(&requests); err != nil {
		return Report{}, appErrorFromDB(err, api.ErrorQueryFailure)
	}

	entries, err := requestEntries(tx, requests, uuid.Nil)
	if err != nil {
		return Report{}, err
	}

	// inactive employees appear only if they traveled
	for _, e := range employees {
		if _, ok := rows[e.ID]; ok {
			continue
		}
		for _, entry := range entries {
			if entry.EmployeeID == e.ID {
				rows[e.ID] = ReportRow{Employee: e.Name(), ProfDevCap: e.ProfDevCap(end)}
				break
			}
		}
	}

	report.Rows, report.Totals = aggregate(entries, rows)
	return report, nil
}

// FundReport rolls up every travel request with an approval or actual expense charged to the fund. Only the
// amounts charged to the fund are counted. A request is in scope if its departure date or its activity start
// date falls within [start, end].
func FundReport(tx *pop.Connection, fund Fund, start, end time.Time) (Report, error) {
	q := tx.Where("(id in (select travel_request_id from approvals where fund_id = ?)"+
		" or id in (select travel_request_id from actual_expenses where fund_id = ?))", fund.ID, fund.ID)

	var requests TravelRequests
	if err := inDateRange(q, start, end).All(&requests); err != nil {
		return Report{}, appErrorFromDB(err, api.ErrorQueryFailure)
	}

	entries, err := requestEntries(tx, requests, fund.ID)
	if err != nil {
		return Report{}, err
	}

	rows := map[uuid.UUID]ReportRow{}
	for _, t := range requests {
		if _, ok := rows[t.TravelerID]; ok {
			continue
		}
		var e Employee
		if err := e.FindByID(tx, t.TravelerID); err != nil {
			return Report{}, err
		}
		rows[e.ID] = ReportRow{Employee: e.Name()}
	}

	report := Report{
		Title:      fund.String(),
		Start:      start,
		End:        end,
		FiscalYear: domain.FiscalYear(end),
	}
	report.Rows, report.Totals = aggregate(entries, rows)
	return report, nil
}

func inDateRange(q *pop.Query, start, end time.Time) *pop.Query {
	start = domain.BeginningOfDay(start)
	end = domain.BeginningOfDay(end)
	return q.Where("((departure_date >= ? and departure_date <= ?)"+
		" or activity_id in (select id from activities where start_date >= ? and start_date <= ?))",
		start, end, start, end)
}

// requestEntries sums the approvals and actual expenses of each request. If fundID is not Nil, only amounts
// charged to that fund are included.
func requestEntries(tx *pop.Connection, requests TravelRequests, fundID uuid.UUID) ([]reportEntry, error) {
	if len(requests) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, len(requests))
	for i := range requests {
		ids[i] = requests[i].ID
	}

	var approvals Approvals
	q := tx.Where("travel_request_id in (?)", uuidsToAny(ids)...)
	if fundID != uuid.Nil {
		q = q.Where("fund_id = ?", fundID)
	}
	if err := q.All(&approvals); err != nil {
		return nil, appErrorFromDB(err, api.ErrorQueryFailure)
	}

	var expenses ActualExpenses
	q = tx.Where("travel_request_id in (?)", uuidsToAny(ids)...)
	if fundID != uuid.Nil {
		q = q.Where("fund_id = ?", fundID)
	}
	if err := q.All(&expenses); err != nil {
		return nil, appErrorFromDB(err, api.ErrorQueryFailure)
	}

	alloc := map[uuid.UUID]decimal.Decimal{}
	for _, a := range approvals {
		alloc[a.TravelRequestID] = alloc[a.TravelRequestID].Add(a.Amount)
	}
	expend := map[uuid.UUID]decimal.Decimal{}
	for _, e := range expenses {
		expend[e.TravelRequestID] = expend[e.TravelRequestID].Add(e.Total)
	}

	entries := make([]reportEntry, len(requests))
	for i, t := range requests {
		entries[i] = reportEntry{
			EmployeeID:     t.TravelerID,
			Administrative: t.Administrative,
			Alloc:          alloc[t.ID],
			Expend:         expend[t.ID],
		}
	}
	return entries, nil
}

func (r Report) ConvertToAPI() api.Report {
	report := api.Report{
		Title:      r.Title,
		Start:      r.Start.Format(domain.DateFormat),
		End:        r.End.Format(domain.DateFormat),
		FiscalYear: r.FiscalYear,
		Rows:       make([]api.ReportRow, len(r.Rows)),
		Totals:     r.Totals.convertToAPI(r.WithCap),
	}
	for i := range r.Rows {
		report.Rows[i] = r.Rows[i].convertToAPI(r.WithCap)
	}
	return report
}

func (r ReportRow) convertToAPI(withCap bool) api.ReportRow {
	row := api.ReportRow{
		EmployeeID:    r.EmployeeID,
		Employee:      r.Employee,
		ProfDevAlloc:  api.NewCurrency(r.ProfDevAlloc),
		AdminAlloc:    api.NewCurrency(r.AdminAlloc),
		TotalAlloc:    api.NewCurrency(r.TotalAlloc),
		ProfDevExpend: api.NewCurrency(r.ProfDevExpend),
		AdminExpend:   api.NewCurrency(r.AdminExpend),
		TotalExpend:   api.NewCurrency(r.TotalExpend),
	}
	if withCap {
		profDevCap := api.NewCurrency(r.ProfDevCap)
		remaining := api.NewCurrency(r.ProfDevRemaining())
		row.ProfDevCap = &profDevCap
		row.ProfDevRemaining = &remaining
	}
	return row
}
