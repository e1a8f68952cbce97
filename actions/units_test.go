package actions

import (
	"net/http"
	"testing"

	"github.com/gobuffalo/nulls"

	"github.com/silinternational/terra/api"
	"github.com/silinternational/terra/domain"
	"github.com/silinternational/terra/models"
)

func (as *ActionSuite) Test_UnitsList() {
	f := models.CreateHierarchyFixtures(as.DB)

	tests := []struct {
		name      string
		actor     models.User
		wantCount int
	}{
		{name: "director", actor: f.Users[models.FixtureEmployeeDirector], wantCount: 4},
		{name: "diit head", actor: f.Users[models.FixtureEmployeeDIITHead], wantCount: 2},
		{name: "developer", actor: f.Users[models.FixtureEmployeeDeveloper], wantCount: 0},
	}
	for _, tt := range tests {
		as.T().Run(tt.name, func(t *testing.T) {
			res := as.authJSON(tt.actor.Email, "/units").Get()
			as.Equal(http.StatusOK, res.Code, "body: %s", res.Body.String())

			var units api.Units
			as.NoError(as.decodeBody(res.Body.Bytes(), &units))
			as.Equal(tt.wantCount, len(units))
		})
	}
}

func (as *ActionSuite) Test_UnitsView() {
	f := models.CreateHierarchyFixtures(as.DB)
	diit := f.Units[models.FixtureUnitDIIT]

	res := as.authJSON(f.Users[models.FixtureEmployeeDirector].Email, "/units/%s", diit.ID).Get()
	body := res.Body.String()
	as.Equal(http.StatusOK, res.Code, "body: %s", body)
	as.verifyResponseData([]string{
		`"id":"` + diit.ID.String(),
		`"name":"DIIT"`,
		`"type":"Executive Division"`,
		`"manager_name":"Grace Hopper"`,
		`"name":"Web Team"`,
	}, body, "UnitsView")
}

func (as *ActionSuite) Test_UnitsReport() {
	f := models.CreateHierarchyFixtures(as.DB)
	developer := f.Employees[models.FixtureEmployeeDeveloper]
	diitHead := f.Employees[models.FixtureEmployeeDIITHead]
	web := f.Units[models.FixtureUnitWeb]

	t := models.CreateTravelFixture(as.DB, developer.ID, models.TravelFixtureConfig{})
	models.CreateApprovalFixture(as.DB, t, diitHead, api.ApprovalTypeFunding,
		nulls.NewUUID(f.Funds[models.FixtureFundDIIT].ID), "250")
	models.CreateActualExpenseFixture(as.DB, t, f.Funds[models.FixtureFundDIIT].ID, "199.50")

	token := f.Users[models.FixtureEmployeeWebLead].Email
	url := "/units/%s/report?start=2023-01-01&end=2023-06-30"

	as.T().Run("json", func(t *testing.T) {
		res := as.authJSON(token, url, web.ID).Get()
		body := res.Body.String()
		as.Equal(http.StatusOK, res.Code, "body: %s", body)

		var report api.Report
		as.NoError(as.decodeBody(res.Body.Bytes(), &report))
		as.Equal("Web Team", report.Title)
		as.Equal("2023-01-01", report.Start)
		as.Equal("250.00", report.Totals.ProfDevAlloc.String())
		as.Equal("199.50", report.Totals.TotalExpend.String())
		as.verifyResponseData([]string{`"employee":"Joshua Gomez"`, `"prof_dev_cap":"2000.00"`}, body, "UnitsReport")
	})

	as.T().Run("csv", func(t *testing.T) {
		req := as.authJSON(token, url, web.ID)
		req.Headers["Accept"] = domain.ContentCSV
		res := req.Get()
		body := res.Body.String()
		as.Equal(http.StatusOK, res.Code, "body: %s", body)
		as.Contains(res.Header().Get("Content-Type"), domain.ContentCSV)
		as.Contains(res.Header().Get("Content-Disposition"), `filename="Web Team_FY2023.csv"`)
		as.Contains(body, "Joshua Gomez,250.00,0.00,250.00,199.50,0.00,199.50")
		as.Contains(body, "Totals,250.00,0.00,250.00,199.50,0.00,199.50")
	})

	as.T().Run("bad date", func(t *testing.T) {
		res := as.authJSON(token, "/units/%s/report?start=March", web.ID).Get()
		as.Equal(http.StatusBadRequest, res.Code)
		as.Contains(res.Body.String(), api.ErrorInvalidDate.String())
	})
}

func (as *ActionSuite) Test_UnitsDelete() {
	f := models.CreateHierarchyFixtures(as.DB)
	admin := f.Users[models.FixtureEmployeeDeveloper]
	as.makeAdmin(&admin)

	empty := models.Unit{
		Name:         "Digital Scholarship",
		Type:         api.UnitTypeTeam,
		ParentUnitID: nulls.NewUUID(f.Units[models.FixtureUnitDIIT].ID),
	}
	models.MustCreate(as.DB, &empty)

	tests := []struct {
		name       string
		actor      models.User
		unit       models.Unit
		wantStatus int
		wantKey    api.ErrorKey
	}{
		{
			name:       "not admin",
			actor:      f.Users[models.FixtureEmployeeDirector],
			unit:       empty,
			wantStatus: http.StatusNotFound,
			wantKey:    api.ErrorNotAuthorized,
		},
		{
			name:       "has subunits",
			actor:      admin,
			unit:       f.Units[models.FixtureUnitDIIT],
			wantStatus: http.StatusBadRequest,
			wantKey:    api.ErrorUnitHasChildren,
		},
		{
			name:       "ok",
			actor:      admin,
			unit:       empty,
			wantStatus: http.StatusNoContent,
		},
	}
	for _, tt := range tests {
		as.T().Run(tt.name, func(t *testing.T) {
			res := as.authJSON(tt.actor.Email, "/units/%s", tt.unit.ID).Delete()
			as.Equal(tt.wantStatus, res.Code, "body: %s", res.Body.String())
			if tt.wantKey != "" {
				as.Contains(res.Body.String(), tt.wantKey.String())
			}
		})
	}

	var unit models.Unit
	as.Error(unit.FindByID(as.DB, empty.ID), "unit should have been deleted")
}
