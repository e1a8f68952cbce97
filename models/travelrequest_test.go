package models

import (
	"net/url"
	"testing"
	"time"

	"github.com/gobuffalo/nulls"
	"github.com/shopspring/decimal"

	"github.com/silinternational/terra/api"
)

func dollars(s string) api.Currency {
	return api.NewCurrency(decimal.RequireFromString(s))
}

func (ms *ModelSuite) TestTravelRequest_Validate() {
	f := CreateHierarchyFixtures(ms.DB)
	t := CreateTravelFixture(ms.DB, f.Employees[FixtureEmployeeDeveloper].ID, TravelFixtureConfig{})

	t.ReturnDate = t.DepartureDate.Add(-time.Hour * 24)
	vErr, _ := t.Validate(ms.DB)
	ms.Greater(len(vErr.Get("TravelRequest.ReturnDate")), 0, "return before departure should be rejected")

	t.ReturnDate = t.DepartureDate
	t.DaysOOO = -1
	vErr, _ = t.Validate(ms.DB)
	ms.Greater(len(vErr.Get("TravelRequest.DaysOOO")), 0, "negative days out of office should be rejected")
}

func (ms *ModelSuite) TestTravelRequest_String() {
	f := CreateHierarchyFixtures(ms.DB)
	t := CreateTravelFixture(ms.DB, f.Employees[FixtureEmployeeDeveloper].ID, TravelFixtureConfig{})

	t.LoadTraveler(ms.DB, false)
	ms.Equal("Joshua Gomez - "+t.Activity.Name, t.String())
}

func (ms *ModelSuite) TestTravelRequest_Approved() {
	f := CreateHierarchyFixtures(ms.DB)
	developer := f.Employees[FixtureEmployeeDeveloper]
	webLead := f.Employees[FixtureEmployeeWebLead]
	diitHead := f.Employees[FixtureEmployeeDIITHead]
	fund := nulls.NewUUID(f.Funds[FixtureFundDIIT].ID)

	ms.T().Run("domestic, no estimates", func(t *testing.T) {
		tr := CreateTravelFixture(ms.DB, developer.ID, TravelFixtureConfig{})
		ms.Equal([]api.ApprovalType{api.ApprovalTypeSupervisor}, tr.RequiredApprovals(ms.DB))
		ms.False(tr.Approved(ms.DB))

		CreateApprovalFixture(ms.DB, tr, webLead, api.ApprovalTypeSupervisor, nulls.UUID{}, "")
		ms.True(tr.Approved(ms.DB))
		ms.False(tr.Funded(ms.DB))
		ms.False(tr.International(ms.DB))
	})

	ms.T().Run("international", func(t *testing.T) {
		tr := CreateTravelFixture(ms.DB, developer.ID, TravelFixtureConfig{Country: "Canada"})
		ms.True(tr.International(ms.DB))
		ms.Equal([]api.ApprovalType{api.ApprovalTypeSupervisor, api.ApprovalTypeInternational},
			tr.RequiredApprovals(ms.DB))

		CreateApprovalFixture(ms.DB, tr, webLead, api.ApprovalTypeSupervisor, nulls.UUID{}, "")
		ms.False(tr.Approved(ms.DB))

		CreateApprovalFixture(ms.DB, tr, diitHead, api.ApprovalTypeInternational, nulls.UUID{}, "")
		ms.True(tr.Approved(ms.DB))
	})

	ms.T().Run("funding", func(t *testing.T) {
		tr := CreateTravelFixture(ms.DB, developer.ID, TravelFixtureConfig{EstimatedTotal: "250"})
		ms.Equal("$250.00", api.FormatDollars(tr.EstimatedTotal(ms.DB)))
		ms.Equal([]api.ApprovalType{api.ApprovalTypeSupervisor, api.ApprovalTypeFunding},
			tr.RequiredApprovals(ms.DB))

		CreateApprovalFixture(ms.DB, tr, webLead, api.ApprovalTypeSupervisor, nulls.UUID{}, "")
		ms.False(tr.Approved(ms.DB))
		ms.False(tr.Funded(ms.DB))

		funding := CreateApprovalFixture(ms.DB, tr, diitHead, api.ApprovalTypeFunding, fund, "250")
		ms.True(tr.Approved(ms.DB))
		ms.True(tr.Funded(ms.DB))
		ms.Equal("$250.00", api.FormatDollars(tr.AllocationsTotal(ms.DB)))
		ms.Equal("$250.00", funding.AmountDollars())

		ms.NoError(funding.Destroy(ms.DB))
		ms.False(tr.Funded(ms.DB), "deleting the funding approval should remove the funding")
		ms.False(tr.Approved(ms.DB))
	})
}

func (ms *ModelSuite) TestTravelRequest_AddApproval() {
	f := CreateHierarchyFixtures(ms.DB)
	tr := CreateTravelFixture(ms.DB, f.Employees[FixtureEmployeeDeveloper].ID, TravelFixtureConfig{})
	diitHead := f.Employees[FixtureEmployeeDIITHead]
	fundID := f.Funds[FixtureFundDIIT].ID

	tests := []struct {
		name    string
		input   api.ApprovalCreateInput
		wantErr *api.AppError
	}{
		{
			name:  "supervisor",
			input: api.ApprovalCreateInput{Type: api.ApprovalTypeSupervisor, ApprovedOn: "2023-02-01"},
		},
		{
			name:  "funding",
			input: api.ApprovalCreateInput{Type: api.ApprovalTypeFunding, FundID: &fundID, Amount: dollars("100")},
		},
		{
			name:    "funding without fund",
			input:   api.ApprovalCreateInput{Type: api.ApprovalTypeFunding, Amount: dollars("100")},
			wantErr: &api.AppError{Key: api.ErrorValidation, Category: api.CategoryUser},
		},
		{
			name:    "amount without fund",
			input:   api.ApprovalCreateInput{Type: api.ApprovalTypeSupervisor, Amount: dollars("1")},
			wantErr: &api.AppError{Key: api.ErrorValidation, Category: api.CategoryUser},
		},
		{
			name:    "negative amount",
			input:   api.ApprovalCreateInput{Type: api.ApprovalTypeFunding, FundID: &fundID, Amount: dollars("-5")},
			wantErr: &api.AppError{Key: api.ErrorValidation, Category: api.CategoryUser},
		},
		{
			name:    "invalid type",
			input:   api.ApprovalCreateInput{Type: "Dean"},
			wantErr: &api.AppError{Key: api.ErrorValidation, Category: api.CategoryUser},
		},
		{
			name:    "bad date",
			input:   api.ApprovalCreateInput{Type: api.ApprovalTypeSupervisor, ApprovedOn: "Feb 1"},
			wantErr: &api.AppError{Key: api.ErrorInvalidDate, Category: api.CategoryUser},
		},
	}
	for _, tt := range tests {
		ms.T().Run(tt.name, func(t *testing.T) {
			a, err := tr.AddApproval(ms.DB, diitHead, tt.input)
			if tt.wantErr != nil {
				ms.EqualAppError(*tt.wantErr, err)
				return
			}
			ms.NoError(err)
			ms.Equal(diitHead.ID, a.ApprovedByID)
			ms.Equal(tt.input.Type, a.Type)
		})
	}

	tr.LoadApprovals(ms.DB, true)
	ms.Equal(2, len(tr.Approvals))
	ms.Equal("$100.00", api.FormatDollars(tr.Approvals.Total()))
}

func (ms *ModelSuite) TestTravelRequest_CanApprove() {
	f := CreateHierarchyFixtures(ms.DB)
	tr := CreateTravelFixture(ms.DB, f.Employees[FixtureEmployeeResearcher].ID, TravelFixtureConfig{})
	diitFund := f.Funds[FixtureFundDIIT].ID
	libraryFund := f.Funds[FixtureFundLibrary].ID

	tests := []struct {
		name  string
		actor User
		input api.ApprovalCreateInput
		want  bool
	}{
		{
			name:  "supervisor",
			actor: f.Users[FixtureEmployeeDirector],
			input: api.ApprovalCreateInput{Type: api.ApprovalTypeSupervisor},
			want:  true,
		},
		{
			name:  "fund manager, own fund",
			actor: f.Users[FixtureEmployeeDIITHead],
			input: api.ApprovalCreateInput{Type: api.ApprovalTypeFunding, FundID: &diitFund, Amount: dollars("100")},
			want:  true,
		},
		{
			name:  "fund manager, other fund",
			actor: f.Users[FixtureEmployeeDIITHead],
			input: api.ApprovalCreateInput{Type: api.ApprovalTypeFunding, FundID: &libraryFund, Amount: dollars("100")},
			want:  false,
		},
		{
			name:  "fund manager, supervisor approval",
			actor: f.Users[FixtureEmployeeDIITHead],
			input: api.ApprovalCreateInput{Type: api.ApprovalTypeSupervisor},
			want:  false,
		},
		{
			name:  "traveler",
			actor: f.Users[FixtureEmployeeResearcher],
			input: api.ApprovalCreateInput{Type: api.ApprovalTypeSupervisor},
			want:  false,
		},
	}
	for _, tt := range tests {
		ms.T().Run(tt.name, func(t *testing.T) {
			ms.Equal(tt.want, tr.CanApprove(ms.DB, tt.actor, tt.input))
		})
	}
}

func (ms *ModelSuite) TestTravelRequest_Close() {
	f := CreateHierarchyFixtures(ms.DB)
	tr := CreateTravelFixture(ms.DB, f.Employees[FixtureEmployeeDeveloper].ID, TravelFixtureConfig{})
	approver := f.Employees[FixtureEmployeeWebLead]
	fundID := f.Funds[FixtureFundDIIT].ID

	ms.NoError(tr.Close(ms.DB))
	ms.NoError(tr.Close(ms.DB), "closing twice is not an error")

	var found TravelRequest
	ms.NoError(found.FindByID(ms.DB, tr.ID))
	ms.True(found.Closed)

	closedErr := api.AppError{Key: api.ErrorTravelRequestClosed, Category: api.CategoryUser}

	_, err := found.AddApproval(ms.DB, approver, api.ApprovalCreateInput{Type: api.ApprovalTypeSupervisor})
	ms.EqualAppError(closedErr, err)

	_, err = found.AddEstimatedExpense(ms.DB, api.EstimatedExpenseInput{Type: api.ExpenseTypeMeals, Total: dollars("10")})
	ms.EqualAppError(closedErr, err)

	_, err = found.AddVacation(ms.DB, api.VacationInput{Start: "2023-03-06", End: "2023-03-07"})
	ms.EqualAppError(closedErr, err)

	expense, err := found.AddActualExpense(ms.DB, api.ActualExpenseInput{
		FundID:   fundID,
		Type:     api.ExpenseTypeAirfare,
		Total:    dollars("199.5"),
		DatePaid: "2023-03-10",
	})
	ms.NoError(err, "actual expenses may be recorded after closing")
	ms.Equal("$199.50", expense.TotalDollars())
	ms.Equal("$199.50", api.FormatDollars(found.ExpendituresTotal(ms.DB)))
}

func (ms *ModelSuite) TestTravelRequest_ClosedApprovalsAndEstimates() {
	f := CreateHierarchyFixtures(ms.DB)
	tr := CreateTravelFixture(ms.DB, f.Employees[FixtureEmployeeDeveloper].ID,
		TravelFixtureConfig{EstimatedTotal: "250"})
	funding := CreateApprovalFixture(ms.DB, tr, f.Employees[FixtureEmployeeDIITHead], api.ApprovalTypeFunding,
		nulls.NewUUID(f.Funds[FixtureFundDIIT].ID), "250")

	tr.LoadEstimatedExpenses(ms.DB, true)
	ms.Len(tr.EstimatedExpenses, 1)
	estimate := tr.EstimatedExpenses[0]

	ms.NoError(tr.Close(ms.DB))

	closedErr := api.AppError{Key: api.ErrorTravelRequestClosed, Category: api.CategoryUser}

	ms.EqualAppError(closedErr, funding.Destroy(ms.DB))
	ms.True(tr.Funded(ms.DB), "a closed request keeps its funding")

	ms.EqualAppError(closedErr,
		estimate.UpdateFromInput(ms.DB, api.EstimatedExpenseInput{Type: api.ExpenseTypeMeals, Total: dollars("10")}))
	ms.EqualAppError(closedErr, estimate.Destroy(ms.DB))
	ms.Equal("$250.00", api.FormatDollars(tr.EstimatedTotal(ms.DB)))
}

func (ms *ModelSuite) TestTravelRequest_AddEstimatedExpense() {
	f := CreateHierarchyFixtures(ms.DB)
	tr := CreateTravelFixture(ms.DB, f.Employees[FixtureEmployeeDeveloper].ID, TravelFixtureConfig{})

	e, err := tr.AddEstimatedExpense(ms.DB, api.EstimatedExpenseInput{Type: api.ExpenseTypeLodging, Total: dollars("250")})
	ms.NoError(err)
	ms.Equal("$250.00", e.TotalDollars())

	_, err = tr.AddEstimatedExpense(ms.DB, api.EstimatedExpenseInput{Type: api.ExpenseTypeLodging, Total: dollars("-1")})
	ms.EqualAppError(api.AppError{Key: api.ErrorValidation, Category: api.CategoryUser}, err)

	_, err = tr.AddEstimatedExpense(ms.DB, api.EstimatedExpenseInput{Type: "Souvenirs", Total: dollars("1")})
	ms.EqualAppError(api.AppError{Key: api.ErrorValidation, Category: api.CategoryUser}, err)

	ms.NoError(e.UpdateFromInput(ms.DB, api.EstimatedExpenseInput{Type: api.ExpenseTypeMeals, Total: dollars("75.25")}))
	ms.Equal("$75.25", api.FormatDollars(tr.EstimatedTotal(ms.DB)))

	ms.NoError(e.Destroy(ms.DB))
	ms.True(tr.EstimatedTotal(ms.DB).IsZero())
}

func (ms *ModelSuite) TestTravelRequest_AddVacation() {
	f := CreateHierarchyFixtures(ms.DB)
	tr := CreateTravelFixture(ms.DB, f.Employees[FixtureEmployeeDeveloper].ID, TravelFixtureConfig{})

	v, err := tr.AddVacation(ms.DB, api.VacationInput{Start: "2023-03-05", End: "2023-03-07"})
	ms.NoError(err)
	ms.Equal(3, v.Days())

	_, err = tr.AddVacation(ms.DB, api.VacationInput{Start: "2024-01-01", End: "2024-01-01"})
	ms.NoError(err, "vacations are not restricted to the travel window")

	_, err = tr.AddVacation(ms.DB, api.VacationInput{Start: "2023-03-07", End: "2023-03-05"})
	ms.EqualAppError(api.AppError{Key: api.ErrorValidation, Category: api.CategoryUser}, err)

	_, err = tr.AddVacation(ms.DB, api.VacationInput{Start: "March 5", End: "2023-03-05"})
	ms.EqualAppError(api.AppError{Key: api.ErrorInvalidDate, Category: api.CategoryUser}, err)

	tr.LoadVacations(ms.DB, true)
	ms.Equal(2, len(tr.Vacations))
}

func (ms *ModelSuite) TestTravelRequest_ConvertToAPI() {
	f := CreateHierarchyFixtures(ms.DB)
	tr := CreateTravelFixture(ms.DB, f.Employees[FixtureEmployeeDeveloper].ID,
		TravelFixtureConfig{EstimatedTotal: "250", Country: "Mexico"})
	CreateApprovalFixture(ms.DB, tr, f.Employees[FixtureEmployeeWebLead], api.ApprovalTypeSupervisor, nulls.UUID{}, "")
	CreateApprovalFixture(ms.DB, tr, f.Employees[FixtureEmployeeDIITHead], api.ApprovalTypeFunding,
		nulls.NewUUID(f.Funds[FixtureFundDIIT].ID), "200")
	CreateActualExpenseFixture(ms.DB, tr, f.Funds[FixtureFundDIIT].ID, "180")

	got := tr.ConvertToAPI(ms.DB)
	ms.Equal("Joshua Gomez", got.Traveler.Name)
	ms.True(got.International)
	ms.True(got.Funded)
	ms.False(got.Approved, "international approval is missing")
	ms.Equal("250.00", got.EstimatedTotal.String())
	ms.Equal("200.00", got.AllocationsTotal.String())
	ms.Equal("180.00", got.ExpendituresTotal.String())
	ms.Equal(2, len(got.Approvals))
	ms.Equal("1000-200-30", got.ActualExpenses[0].FundName)
}

func (ms *ModelSuite) TestTravelRequestsViewableBy() {
	f := CreateHierarchyFixtures(ms.DB)
	developerTrip := CreateTravelFixture(ms.DB, f.Employees[FixtureEmployeeDeveloper].ID, TravelFixtureConfig{})
	researchTrip := CreateTravelFixture(ms.DB, f.Employees[FixtureEmployeeResearcher].ID,
		TravelFixtureConfig{Administrative: true})
	ms.NoError(researchTrip.Close(ms.DB))

	reporter := CreateUserFixtures(ms.DB, 1).Users[0]
	reporter.AppRole = AppRoleReporter
	outsider := CreateUserFixtures(ms.DB, 1).Users[0]

	tests := []struct {
		name   string
		actor  User
		filter string
		want   int
	}{
		{name: "developer sees own", actor: f.Users[FixtureEmployeeDeveloper], want: 1},
		{name: "web lead sees report", actor: f.Users[FixtureEmployeeWebLead], want: 1},
		{name: "DIIT head sees unit below", actor: f.Users[FixtureEmployeeDIITHead], want: 1},
		{name: "director sees all", actor: f.Users[FixtureEmployeeDirector], want: 2},
		{name: "researcher sees own", actor: f.Users[FixtureEmployeeResearcher], want: 1},
		{name: "reporter sees all", actor: reporter, want: 2},
		{name: "closed filter", actor: reporter, filter: "closed:true", want: 1},
		{name: "open filter", actor: reporter, filter: "closed:false", want: 1},
		{name: "administrative filter", actor: reporter, filter: "administrative:true", want: 1},
		{name: "not an employee", actor: outsider, want: 0},
	}
	for _, tt := range tests {
		ms.T().Run(tt.name, func(t *testing.T) {
			q := api.NewQueryParams(url.Values{"filter": {tt.filter}})
			got, err := TravelRequestsViewableBy(ms.DB, tt.actor, q)
			ms.NoError(err)
			ms.Equal(tt.want, len(got))
		})
	}

	got, err := TravelRequestsViewableBy(ms.DB, f.Users[FixtureEmployeeDeveloper], api.NewQueryParams(url.Values{}))
	ms.NoError(err)
	ms.Equal(developerTrip.ID, got[0].ID)
}
