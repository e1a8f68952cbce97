package actions

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/terra/api"
	"github.com/silinternational/terra/domain"
	"github.com/silinternational/terra/log"
)

func registerCustomErrorHandler(app *buffalo.App) {
	app.ErrorHandlers[http.StatusInternalServerError] = customErrorHandler
	app.ErrorHandlers[http.StatusNotFound] = notFoundErrorHandler
}

func customErrorHandler(status int, origErr error, c buffalo.Context) error {
	log.WithFields(map[string]any{
		"status": status,
		"method": c.Request().Method,
		"URI":    c.Request().RequestURI,
	}).Error(origErr)

	if domain.Env.GoEnv == domain.EnvDevelopment {
		debug.PrintStack()
	}

	appError := api.AppError{
		HttpStatus: status,
		Key:        api.ErrorGenericInternalServer,
		DebugMsg:   fmt.Sprintf("(%T) %s", origErr, origErr),
		Message:    "An internal system error has occurred",
	}
	return writeJSONError(c, appError)
}

func notFoundErrorHandler(status int, origErr error, c buffalo.Context) error {
	appError := api.AppError{
		HttpStatus: status,
		Key:        api.ErrorRouteNotFound,
		Message:    "Route not found",
	}
	if domain.Env.GoEnv != domain.EnvProduction {
		appError.DebugMsg = c.Request().Method + " " + c.Request().URL.Path
	}
	return writeJSONError(c, appError)
}

func writeJSONError(c buffalo.Context, appError api.AppError) error {
	c.Response().Header().Set("content-type", "application/json")
	c.Response().WriteHeader(appError.HttpStatus)
	return json.NewEncoder(c.Response()).Encode(&appError)
}
