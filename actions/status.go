package actions

import (
	"net/http"

	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/terra/api"
	"github.com/silinternational/terra/models"
)

// swagger:operation GET /status Status Status
// Status
//
// checks the app status
// ---
//
//	responses:
//	  '204':
//	    description: app status is good
//	  '500':
//	    description: database is not reachable
func statusHandler(c buffalo.Context) error {
	if err := models.Tx(c).RawQuery("SELECT 1").Exec(); err != nil {
		return reportError(c, api.NewAppError(err, api.ErrorQueryFailure, api.CategoryDatabase))
	}
	c.Response().WriteHeader(http.StatusNoContent)
	return nil
}
