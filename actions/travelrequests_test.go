package actions

import (
	"net/http"
	"testing"

	"github.com/gobuffalo/nulls"
	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"

	"github.com/silinternational/terra/api"
	"github.com/silinternational/terra/models"
)

func currency(s string) api.Currency {
	return api.NewCurrency(decimal.RequireFromString(s))
}

func (as *ActionSuite) Test_TravelRequestsList() {
	f := models.CreateHierarchyFixtures(as.DB)
	developer := f.Employees[models.FixtureEmployeeDeveloper]
	models.CreateTravelFixture(as.DB, developer.ID, models.TravelFixtureConfig{})

	tests := []struct {
		name      string
		actor     models.User
		query     string
		wantCount int
	}{
		{name: "traveler", actor: f.Users[models.FixtureEmployeeDeveloper], wantCount: 1},
		{name: "supervisor", actor: f.Users[models.FixtureEmployeeWebLead], wantCount: 1},
		{name: "unit manager above", actor: f.Users[models.FixtureEmployeeDIITHead], wantCount: 1},
		{name: "unrelated", actor: f.Users[models.FixtureEmployeeResearcher], wantCount: 0},
		{name: "closed filter", actor: f.Users[models.FixtureEmployeeWebLead], query: "?filter=closed:true"},
		{name: "open filter", actor: f.Users[models.FixtureEmployeeWebLead], query: "?filter=closed:false", wantCount: 1},
	}
	for _, tt := range tests {
		as.T().Run(tt.name, func(t *testing.T) {
			res := as.authJSON(tt.actor.Email, "/travel-requests"+tt.query).Get()
			as.Equal(http.StatusOK, res.Code, "body: %s", res.Body.String())

			var requests api.TravelRequests
			as.NoError(as.decodeBody(res.Body.Bytes(), &requests))
			as.Equal(tt.wantCount, len(requests))
		})
	}
}

func (as *ActionSuite) Test_TravelRequestsView() {
	f := models.CreateHierarchyFixtures(as.DB)
	developer := f.Employees[models.FixtureEmployeeDeveloper]
	t := models.CreateTravelFixture(as.DB, developer.ID, models.TravelFixtureConfig{EstimatedTotal: "400"})

	res := as.authJSON(f.Users[models.FixtureEmployeeWebLead].Email, "/travel-requests/%s", t.ID).Get()
	body := res.Body.String()
	as.Equal(http.StatusOK, res.Code, "body: %s", body)
	as.verifyResponseData([]string{
		`"id":"` + t.ID.String(),
		`"departure_date":"2023-03-01"`,
		`"return_date":"2023-03-05"`,
		`"estimated_total":"400.00"`,
		`"approved":false`,
		`"closed":false`,
	}, body, "TravelRequestsView")

	res = as.authJSON(f.Users[models.FixtureEmployeeResearcher].Email, "/travel-requests/%s", t.ID).Get()
	as.Equal(http.StatusNotFound, res.Code)
	as.Contains(res.Body.String(), api.ErrorNotAuthorized.String())
}

func (as *ActionSuite) Test_TravelRequestsClose() {
	f := models.CreateHierarchyFixtures(as.DB)
	developer := f.Employees[models.FixtureEmployeeDeveloper]
	t := models.CreateTravelFixture(as.DB, developer.ID, models.TravelFixtureConfig{})

	res := as.authJSON(f.Users[models.FixtureEmployeeDeveloper].Email, "/travel-requests/%s/close", t.ID).Put(nil)
	as.Equal(http.StatusNotFound, res.Code, "the traveler may not close their own request")

	res = as.authJSON(f.Users[models.FixtureEmployeeWebLead].Email, "/travel-requests/%s/close", t.ID).Put(nil)
	as.Equal(http.StatusOK, res.Code, "body: %s", res.Body.String())
	as.Contains(res.Body.String(), `"closed":true`)

	vacation := api.VacationInput{Start: "2023-03-03", End: "2023-03-04"}
	res = as.authJSON(f.Users[models.FixtureEmployeeDeveloper].Email, "/travel-requests/%s/vacations", t.ID).
		Post(vacation)
	as.Equal(http.StatusNotFound, res.Code, "the traveler may not change a closed request")

	res = as.authJSON(f.Users[models.FixtureEmployeeWebLead].Email, "/travel-requests/%s/vacations", t.ID).
		Post(vacation)
	as.Equal(http.StatusBadRequest, res.Code, "body: %s", res.Body.String())
	as.Contains(res.Body.String(), api.ErrorTravelRequestClosed.String())
}

func (as *ActionSuite) Test_ApprovalsCreate() {
	f := models.CreateHierarchyFixtures(as.DB)
	diitFund := f.Funds[models.FixtureFundDIIT].ID
	libraryFund := f.Funds[models.FixtureFundLibrary].ID

	developerTrip := models.CreateTravelFixture(as.DB, f.Employees[models.FixtureEmployeeDeveloper].ID,
		models.TravelFixtureConfig{})
	researcherTrip := models.CreateTravelFixture(as.DB, f.Employees[models.FixtureEmployeeResearcher].ID,
		models.TravelFixtureConfig{})

	tests := []struct {
		name       string
		actor      models.User
		trip       models.TravelRequest
		body       any
		wantStatus int
		wantKey    api.ErrorKey
		wantData   []string
	}{
		{
			name:       "supervisor",
			actor:      f.Users[models.FixtureEmployeeWebLead],
			trip:       developerTrip,
			body:       api.ApprovalCreateInput{Type: api.ApprovalTypeSupervisor, ApprovedOn: "2023-02-01"},
			wantStatus: http.StatusCreated,
			wantData:   []string{`"type":"Supervisor"`, `"approved_by_name":"Linus Lead"`, `"approved_on":"2023-02-01"`},
		},
		{
			name:  "fund manager of the charged fund",
			actor: f.Users[models.FixtureEmployeeDIITHead],
			trip:  researcherTrip,
			body: api.ApprovalCreateInput{
				Type: api.ApprovalTypeFunding, FundID: &diitFund, Amount: currency("250"),
			},
			wantStatus: http.StatusCreated,
			wantData:   []string{`"type":"Funding"`, `"fund_name":"1000-200-30"`, `"amount":"250.00"`},
		},
		{
			name:  "fund manager of another fund",
			actor: f.Users[models.FixtureEmployeeDIITHead],
			trip:  researcherTrip,
			body: api.ApprovalCreateInput{
				Type: api.ApprovalTypeFunding, FundID: &libraryFund, Amount: currency("250"),
			},
			wantStatus: http.StatusNotFound,
			wantKey:    api.ErrorNotAuthorized,
		},
		{
			name:       "traveler",
			actor:      f.Users[models.FixtureEmployeeDeveloper],
			trip:       developerTrip,
			body:       api.ApprovalCreateInput{Type: api.ApprovalTypeSupervisor},
			wantStatus: http.StatusNotFound,
			wantKey:    api.ErrorNotAuthorized,
		},
		{
			name:       "funding without a fund",
			actor:      f.Users[models.FixtureEmployeeWebLead],
			trip:       developerTrip,
			body:       api.ApprovalCreateInput{Type: api.ApprovalTypeFunding, Amount: currency("10")},
			wantStatus: http.StatusBadRequest,
			wantKey:    api.ErrorValidation,
		},
		{
			name:       "unknown field",
			actor:      f.Users[models.FixtureEmployeeWebLead],
			trip:       developerTrip,
			body:       map[string]any{"type": "Supervisor", "approver": "me"},
			wantStatus: http.StatusBadRequest,
			wantKey:    api.ErrorInvalidRequestBody,
		},
		{
			name:       "bad date",
			actor:      f.Users[models.FixtureEmployeeWebLead],
			trip:       developerTrip,
			body:       api.ApprovalCreateInput{Type: api.ApprovalTypeSupervisor, ApprovedOn: "Feb 1"},
			wantStatus: http.StatusBadRequest,
			wantKey:    api.ErrorInvalidDate,
		},
	}
	for _, tt := range tests {
		as.T().Run(tt.name, func(t *testing.T) {
			res := as.authJSON(tt.actor.Email, "/travel-requests/%s/approvals", tt.trip.ID).Post(tt.body)
			body := res.Body.String()
			as.Equal(tt.wantStatus, res.Code, "body: %s", body)
			if tt.wantKey != "" {
				as.Contains(body, tt.wantKey.String())
			}
			as.verifyResponseData(tt.wantData, body, tt.name)
		})
	}
}

func (as *ActionSuite) Test_ApprovalsDelete() {
	f := models.CreateHierarchyFixtures(as.DB)
	t := models.CreateTravelFixture(as.DB, f.Employees[models.FixtureEmployeeDeveloper].ID, models.TravelFixtureConfig{})
	approval := models.CreateApprovalFixture(as.DB, t, f.Employees[models.FixtureEmployeeWebLead],
		api.ApprovalTypeSupervisor, nulls.UUID{}, "")

	res := as.authJSON(f.Users[models.FixtureEmployeeDeveloper].Email, "/approvals/%s", approval.ID).Delete()
	as.Equal(http.StatusNotFound, res.Code, "the traveler may not remove an approval")

	res = as.authJSON(f.Users[models.FixtureEmployeeWebLead].Email, "/approvals/%s", approval.ID).Delete()
	as.Equal(http.StatusNoContent, res.Code, "body: %s", res.Body.String())

	var a models.Approval
	as.Error(a.FindByID(as.DB, approval.ID))

	kept := models.CreateApprovalFixture(as.DB, t, f.Employees[models.FixtureEmployeeWebLead],
		api.ApprovalTypeSupervisor, nulls.UUID{}, "")
	as.NoError(t.Close(as.DB))

	res = as.authJSON(f.Users[models.FixtureEmployeeWebLead].Email, "/approvals/%s", kept.ID).Delete()
	as.Equal(http.StatusBadRequest, res.Code, "body: %s", res.Body.String())
	as.Contains(res.Body.String(), api.ErrorTravelRequestClosed.String())
	as.NoError(a.FindByID(as.DB, kept.ID))
}

func (as *ActionSuite) Test_EstimatedExpenses() {
	f := models.CreateHierarchyFixtures(as.DB)
	t := models.CreateTravelFixture(as.DB, f.Employees[models.FixtureEmployeeDeveloper].ID, models.TravelFixtureConfig{})
	traveler := f.Users[models.FixtureEmployeeDeveloper].Email

	res := as.authJSON(traveler, "/travel-requests/%s/estimated-expenses", t.ID).
		Post(api.EstimatedExpenseInput{Type: api.ExpenseTypeAirfare, Total: currency("612.40")})
	as.Equal(http.StatusCreated, res.Code, "body: %s", res.Body.String())

	var expense api.EstimatedExpense
	as.NoError(as.decodeBody(res.Body.Bytes(), &expense))
	as.Equal(api.ExpenseTypeAirfare, expense.Type)
	as.Equal("612.40", expense.Total.String())

	res = as.authJSON(traveler, "/travel-requests/%s/estimated-expenses", t.ID).
		Post(api.EstimatedExpenseInput{Type: "Souvenirs", Total: currency("5")})
	as.Equal(http.StatusBadRequest, res.Code)
	as.Contains(res.Body.String(), api.ErrorValidation.String())

	res = as.authJSON(traveler, "/estimated-expenses/%s", expense.ID).
		Put(api.EstimatedExpenseInput{Type: api.ExpenseTypeAirfare, Total: currency("580")})
	as.Equal(http.StatusOK, res.Code, "body: %s", res.Body.String())
	as.Contains(res.Body.String(), `"total":"580.00"`)

	res = as.authJSON(f.Users[models.FixtureEmployeeResearcher].Email, "/estimated-expenses/%s", expense.ID).Delete()
	as.Equal(http.StatusNotFound, res.Code)

	res = as.authJSON(traveler, "/estimated-expenses/%s", expense.ID).Delete()
	as.Equal(http.StatusNoContent, res.Code, "body: %s", res.Body.String())
}

func (as *ActionSuite) Test_ActualExpenses() {
	f := models.CreateHierarchyFixtures(as.DB)
	t := models.CreateTravelFixture(as.DB, f.Employees[models.FixtureEmployeeDeveloper].ID, models.TravelFixtureConfig{})
	fundID := f.Funds[models.FixtureFundDIIT].ID
	lead := f.Users[models.FixtureEmployeeWebLead].Email

	input := api.ActualExpenseInput{
		FundID:   fundID,
		Type:     api.ExpenseTypeLodging,
		Total:    currency("320.15"),
		DatePaid: "2023-03-10",
	}

	res := as.authJSON(f.Users[models.FixtureEmployeeDeveloper].Email, "/travel-requests/%s/actual-expenses", t.ID).
		Post(input)
	as.Equal(http.StatusNotFound, res.Code, "the traveler may not record actual expenses")

	res = as.authJSON(lead, "/travel-requests/%s/actual-expenses", t.ID).Post(input)
	body := res.Body.String()
	as.Equal(http.StatusCreated, res.Code, "body: %s", body)
	as.verifyResponseData([]string{
		`"fund_name":"1000-200-30"`,
		`"total":"320.15"`,
		`"date_paid":"2023-03-10"`,
	}, body, "ActualExpensesCreate")

	var expense api.ActualExpense
	as.NoError(as.decodeBody(res.Body.Bytes(), &expense))

	input.FundID = uuid.Nil
	res = as.authJSON(lead, "/actual-expenses/%s", expense.ID).Put(input)
	as.Equal(http.StatusBadRequest, res.Code, "a fund is required")
	as.Contains(res.Body.String(), api.ErrorValidation.String())

	input.FundID = fundID
	input.Total = currency("300")
	res = as.authJSON(lead, "/actual-expenses/%s", expense.ID).Put(input)
	as.Equal(http.StatusOK, res.Code, "body: %s", res.Body.String())
	as.Contains(res.Body.String(), `"total":"300.00"`)

	res = as.authJSON(lead, "/actual-expenses/%s", expense.ID).Delete()
	as.Equal(http.StatusNoContent, res.Code, "body: %s", res.Body.String())
}

func (as *ActionSuite) Test_VacationsCreate() {
	f := models.CreateHierarchyFixtures(as.DB)
	t := models.CreateTravelFixture(as.DB, f.Employees[models.FixtureEmployeeDeveloper].ID, models.TravelFixtureConfig{})
	traveler := f.Users[models.FixtureEmployeeDeveloper].Email

	tests := []struct {
		name       string
		input      api.VacationInput
		wantStatus int
		wantKey    api.ErrorKey
	}{
		{
			name:       "ok",
			input:      api.VacationInput{Start: "2023-03-04", End: "2023-03-05"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "end before start",
			input:      api.VacationInput{Start: "2023-03-05", End: "2023-03-04"},
			wantStatus: http.StatusBadRequest,
			wantKey:    api.ErrorValidation,
		},
		{
			name:       "bad date",
			input:      api.VacationInput{Start: "2023-03-05", End: "tomorrow"},
			wantStatus: http.StatusBadRequest,
			wantKey:    api.ErrorInvalidDate,
		},
	}
	for _, tt := range tests {
		as.T().Run(tt.name, func(t2 *testing.T) {
			res := as.authJSON(traveler, "/travel-requests/%s/vacations", t.ID).Post(tt.input)
			as.Equal(tt.wantStatus, res.Code, "body: %s", res.Body.String())
			if tt.wantKey != "" {
				as.Contains(res.Body.String(), tt.wantKey.String())
			}
		})
	}

	var vacations models.Vacations
	as.NoError(as.DB.Where("travel_request_id = ?", t.ID).All(&vacations))
	as.Equal(1, len(vacations))
}
