package actions

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/silinternational/terra/domain"
	"github.com/silinternational/terra/models"
)

func (as *ActionSuite) Test_HomeHandler() {
	res := as.JSON("/").Get()

	as.Equal(http.StatusOK, res.Code)
	as.Contains(res.Body.String(), fmt.Sprintf("Welcome to %s API", domain.Env.AppName))
}

func (as *ActionSuite) Test_StatusHandler() {
	res := as.JSON("/status").Get()

	as.Equal(http.StatusNoContent, res.Code)
}

func (as *ActionSuite) Test_ConfigHandlers() {
	f := models.CreateUserFixtures(as.DB, 1)
	token := f.Users[0].Email

	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "approval types",
			url:  "/config/approval-types",
			want: `["Supervisor","Funding","International"]`,
		},
		{
			name: "expense types",
			url:  "/config/expense-types",
			want: `["Conference Registration","Airfare","Lodging","Ground Transportation","Mileage","Meals","Other"]`,
		},
		{
			name: "unit types",
			url:  "/config/unit-types",
			want: `["Library","Executive Division","Managerial Unit","Team"]`,
		},
	}
	for _, tt := range tests {
		as.T().Run(tt.name, func(t *testing.T) {
			res := as.authJSON(token, tt.url).Get()
			as.Equal(http.StatusOK, res.Code, "body: %s", res.Body.String())
			as.JSONEq(tt.want, res.Body.String())
		})
	}

	res := as.JSON("/config/unit-types").Get()
	as.Equal(http.StatusUnauthorized, res.Code)
}
