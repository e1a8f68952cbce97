package actions

import (
	"net/http"
	"testing"

	"github.com/gobuffalo/nulls"

	"github.com/silinternational/terra/api"
	"github.com/silinternational/terra/domain"
	"github.com/silinternational/terra/models"
)

func (as *ActionSuite) Test_FundsList() {
	f := models.CreateHierarchyFixtures(as.DB)
	reporter := f.Users[models.FixtureEmployeeResearcher]
	reporter.AppRole = models.AppRoleReporter
	as.NoError(reporter.Update(as.DB))

	tests := []struct {
		name      string
		actor     models.User
		wantNames []string
	}{
		{name: "fund manager", actor: f.Users[models.FixtureEmployeeDIITHead], wantNames: []string{"1000-200-30"}},
		{name: "reporter", actor: reporter, wantNames: []string{"1000-200-30", "1000-300-40"}},
		{name: "developer", actor: f.Users[models.FixtureEmployeeDeveloper], wantNames: []string{}},
	}
	for _, tt := range tests {
		as.T().Run(tt.name, func(t *testing.T) {
			res := as.authJSON(tt.actor.Email, "/funds").Get()
			as.Equal(http.StatusOK, res.Code, "body: %s", res.Body.String())

			var funds api.Funds
			as.NoError(as.decodeBody(res.Body.Bytes(), &funds))
			names := make([]string, len(funds))
			for i := range funds {
				names[i] = funds[i].Name
			}
			as.Equal(tt.wantNames, names)
		})
	}
}

func (as *ActionSuite) Test_FundsView() {
	f := models.CreateHierarchyFixtures(as.DB)
	fund := f.Funds[models.FixtureFundDIIT]

	res := as.authJSON(f.Users[models.FixtureEmployeeDIITHead].Email, "/funds/%s", fund.ID).Get()
	as.Equal(http.StatusOK, res.Code, "body: %s", res.Body.String())
	as.Contains(res.Body.String(), `"name":"1000-200-30"`)

	res = as.authJSON(f.Users[models.FixtureEmployeeWebLead].Email, "/funds/%s", fund.ID).Get()
	as.Equal(http.StatusNotFound, res.Code, "only the fund manager may view the fund")
}

func (as *ActionSuite) Test_FundsReport() {
	f := models.CreateHierarchyFixtures(as.DB)
	fund := f.Funds[models.FixtureFundDIIT]
	diitHead := f.Employees[models.FixtureEmployeeDIITHead]

	t := models.CreateTravelFixture(as.DB, f.Employees[models.FixtureEmployeeDeveloper].ID,
		models.TravelFixtureConfig{Administrative: true})
	models.CreateApprovalFixture(as.DB, t, diitHead, api.ApprovalTypeFunding, nulls.NewUUID(fund.ID), "100")
	models.CreateActualExpenseFixture(as.DB, t, fund.ID, "80")

	token := f.Users[models.FixtureEmployeeDIITHead].Email
	url := "/funds/%s/report?start=2023-01-01&end=2023-06-30"

	as.T().Run("json", func(t *testing.T) {
		res := as.authJSON(token, url, fund.ID).Get()
		as.Equal(http.StatusOK, res.Code, "body: %s", res.Body.String())

		var report api.Report
		as.NoError(as.decodeBody(res.Body.Bytes(), &report))
		as.Equal("1000-200-30", report.Title)
		as.Equal(1, len(report.Rows))
		as.Equal("100.00", report.Rows[0].AdminAlloc.String())
		as.Equal("80.00", report.Rows[0].AdminExpend.String())
		as.Nil(report.Rows[0].ProfDevCap, "fund reports do not carry the cap")
	})

	as.T().Run("csv", func(t *testing.T) {
		req := as.authJSON(token, url, fund.ID)
		req.Headers["Accept"] = domain.ContentCSV
		res := req.Get()
		body := res.Body.String()
		as.Equal(http.StatusOK, res.Code, "body: %s", body)
		as.Contains(res.Header().Get("Content-Disposition"), `filename="1000-200-30_FY2023.csv"`)
		as.Contains(body, "Employee,Prof Dev Approved,Admin Approved,Total Approved,Prof Dev Expenditures,"+
			"Admin Expenditures,Total Expenditures\n")
		as.Contains(body, "Joshua Gomez,0.00,100.00,100.00,0.00,80.00,80.00\n")
		as.Contains(body, "Totals,0.00,100.00,100.00,0.00,80.00,80.00\n")
	})
}
