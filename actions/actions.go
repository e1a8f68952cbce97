package actions

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"

	"github.com/gobuffalo/buffalo"
	"github.com/gobuffalo/buffalo/render"

	"github.com/silinternational/terra/api"
	"github.com/silinternational/terra/domain"
	"github.com/silinternational/terra/log"
	"github.com/silinternational/terra/models"
)

var r = render.New(render.Options{
	DefaultContentType: "application/json",
})

// reportError logs an error with details and renders the error with buffalo.Render.
// If the HTTP status code provided is in the 300 family, buffalo.Redirect is used instead.
func reportError(c buffalo.Context, err error) error {
	var appErr *api.AppError
	if !errors.As(err, &appErr) {
		appErr = appErrorFromErr(err)
	}
	appErr.SetHttpStatusFromCategory()

	if appErr.Extras == nil {
		appErr.Extras = map[string]any{}
	}

	appErr.Extras = domain.MergeExtras([]map[string]any{domain.GetExtras(c), appErr.Extras})
	appErr.Extras["function"] = GetFunctionName(2)
	appErr.Extras["key"] = appErr.Key
	appErr.Extras["status"] = appErr.HttpStatus
	appErr.Extras["redirectURL"] = appErr.RedirectURL
	appErr.Extras["method"] = c.Request().Method
	appErr.Extras["URI"] = c.Request().RequestURI
	appErr.Extras["IP"] = c.Request().RemoteAddr

	l := log.WithFields(appErr.Extras)
	if appErr.HttpStatus >= http.StatusInternalServerError {
		l.Error(appErr.Error())
	} else {
		l.Warning(appErr.Error())
	}

	appErr.LoadTranslatedMessage(c)

	// clear out debugging info if not in development or test
	if domain.Env.GoEnv == domain.EnvDevelopment || domain.Env.GoEnv == domain.EnvTest {
		if appErr.Err != nil {
			appErr.DebugMsg = appErr.Err.Error()
		}
	} else {
		appErr.Extras = map[string]any{}
	}

	if appErr.HttpStatus >= 300 && appErr.HttpStatus <= 399 {
		if appErr.RedirectURL == "" {
			appErr.RedirectURL = domain.Env.UIURL + "/login?appError=" + appErr.Message
		}
		return c.Redirect(appErr.HttpStatus, appErr.RedirectURL)
	}
	return c.Render(appErr.HttpStatus, r.JSON(appErr))
}

// reportErrorAndClearSession logs an error with details, clears the session, and renders the error with buffalo.Render.
func reportErrorAndClearSession(c buffalo.Context, err error) error {
	c.Session().Clear()
	return reportError(c, err)
}

func appErrorFromErr(err error) *api.AppError {
	return &api.AppError{
		Err:        err,
		HttpStatus: http.StatusInternalServerError,
		Key:        api.ErrorUnknown,
		DebugMsg:   err.Error(),
	}
}

// GetFunctionName provides the filename, line number, and function name of the caller, skipping the top `skip`
// functions on the stack.
func GetFunctionName(skip int) string {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "?"
	}

	fn := runtime.FuncForPC(pc)
	return fmt.Sprintf("%s:%d %s", file, line, fn.Name())
}

func renderOk(c buffalo.Context, v any) error {
	return c.Render(http.StatusOK, r.JSON(v))
}

func renderCreated(c buffalo.Context, v any) error {
	return c.Render(http.StatusCreated, r.JSON(v))
}

func renderNoContent(c buffalo.Context) error {
	c.Response().WriteHeader(http.StatusNoContent)
	return nil
}

// renderCSV sends the content as a file download
func renderCSV(c buffalo.Context, filename string, content []byte) error {
	c.Response().Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Render(http.StatusOK, r.Func(domain.ContentCSV, func(w io.Writer, _ render.Data) error {
		_, err := w.Write(content)
		return err
	}))
}

// wantsCSV is true if the client asked for a CSV download
func wantsCSV(c buffalo.Context) bool {
	return strings.Contains(c.Request().Header.Get("Accept"), domain.ContentCSV)
}

// StrictBind decodes the JSON request body into dest, rejecting unknown fields
func StrictBind(c buffalo.Context, dest any) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return api.NewAppError(err, api.ErrorInvalidRequestBody, api.CategoryUser)
	}
	return nil
}

// getReferencedResource returns the resource AuthZ placed in the context
func getReferencedResource[T any](c buffalo.Context, name string) (*T, error) {
	resource, ok := c.Value(name).(*T)
	if !ok || resource == nil {
		err := fmt.Errorf("%s not found in context", name)
		return nil, api.NewAppError(err, api.ErrorResourceNotFound, api.CategoryInternal)
	}
	return resource, nil
}

// currentEmployee returns the employee record of the current user
func currentEmployee(c buffalo.Context) (models.Employee, error) {
	actor := models.CurrentUser(c)
	employee, ok := actor.Employee(models.Tx(c))
	if !ok {
		err := fmt.Errorf("user %s has no employee record", actor.ID)
		return employee, api.NewAppError(err, api.ErrorEmployeeNotFound, api.CategoryUser)
	}
	return employee, nil
}
