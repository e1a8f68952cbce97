package actions

import (
	"fmt"

	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/terra/domain"
)

// homeHandler is a default handler to serve up a welcome message
func homeHandler(c buffalo.Context) error {
	message := fmt.Sprintf("Welcome to %s API", domain.Env.AppName)
	return renderOk(c, map[string]string{"message": message})
}
