package actions

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gobuffalo/httptest"

	"github.com/silinternational/terra/api"
	"github.com/silinternational/terra/domain"
	"github.com/silinternational/terra/models"
)

const unitsCSV = `Unit Name,Unit Type,Parent Unit Name
University Library,Library,
Special Collections,Managerial Unit,University Library
Archives,Team,Special Collections
Rare Books,Committee,Special Collections
`

func (as *ActionSuite) importRequest(token, kind, content string) *httptest.Response {
	req := as.HTML("/imports/%s", kind)
	req.Headers["Authorization"] = "Bearer " + token
	req.Headers["Accept"] = "application/json"
	res, err := req.MultiPartPost(map[string]string{"source": "test"}, httptest.File{
		ParamName: fileFieldName,
		FileName:  kind + ".csv",
		Reader:    strings.NewReader(content),
	})
	as.NoError(err)
	return res
}

func (as *ActionSuite) Test_ImportsCreate() {
	uf := models.CreateUserFixtures(as.DB, 2)
	admin := uf.Users[0]
	as.makeAdmin(&admin)
	notAdmin := uf.Users[1]

	tests := []struct {
		name        string
		token       string
		kind        string
		wantStatus  int
		wantKey     api.ErrorKey
		wantCreated int
		wantFailed  int
	}{
		{
			name:       "not admin",
			token:      notAdmin.Email,
			kind:       "units",
			wantStatus: http.StatusNotFound,
			wantKey:    api.ErrorNotAuthorized,
		},
		{
			name:       "unknown kind",
			token:      admin.Email,
			kind:       "budgets",
			wantStatus: http.StatusBadRequest,
			wantKey:    api.ErrorImportKind,
		},
		{
			name:        "units",
			token:       admin.Email,
			kind:        "units",
			wantStatus:  http.StatusOK,
			wantCreated: 3,
			wantFailed:  1,
		},
	}
	for _, tt := range tests {
		as.T().Run(tt.name, func(t *testing.T) {
			res := as.importRequest(tt.token, tt.kind, unitsCSV)
			body := res.Body.String()
			as.Equal(tt.wantStatus, res.Code, "body: %s", body)
			if tt.wantKey != "" {
				as.Contains(body, tt.wantKey.String())
				return
			}

			var result api.ImportResult
			as.NoError(as.decodeBody(res.Body.Bytes(), &result))
			as.Equal(tt.kind, result.Kind)
			as.Equal(tt.wantCreated, result.Created)
			as.Equal(tt.wantFailed, len(result.Failures))
			as.Equal(5, result.Failures[0].Line)
		})
	}

	var archives models.Unit
	as.NoError(archives.FindByName(as.DB, "Archives"))
	parent, ok := archives.Parent(as.DB)
	as.True(ok)
	as.Equal("Special Collections", parent.Name)
}

func (as *ActionSuite) Test_ImportsList() {
	bucket := domain.Env.AwsS3Bucket
	defer func() { domain.Env.AwsS3Bucket = bucket }()
	domain.Env.AwsS3Bucket = ""

	uf := models.CreateUserFixtures(as.DB, 2)
	admin := uf.Users[0]
	as.makeAdmin(&admin)

	res := as.authJSON(uf.Users[1].Email, "/imports").Get()
	as.Equal(http.StatusNotFound, res.Code)

	res = as.authJSON(admin.Email, "/imports").Get()
	as.Equal(http.StatusOK, res.Code, res.Body.String())
	as.Equal("[]", strings.TrimSpace(res.Body.String()))
}
