package actions

import (
	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/terra/models"
)

// swagger:operation GET /users/me Users UsersMe
// UsersMe
//
// gets the data for authenticated User.
// ---
//
//	responses:
//	  '200':
//	    description: authenticated user
//	    schema:
//	      "$ref": "#/definitions/User"
func usersMe(c buffalo.Context) error {
	user := models.CurrentUser(c)
	return renderOk(c, user.ConvertToAPI(models.Tx(c)))
}
