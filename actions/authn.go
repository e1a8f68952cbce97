package actions

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gobuffalo/buffalo"
	"github.com/gofrs/uuid"

	"github.com/silinternational/terra/api"
	"github.com/silinternational/terra/domain"
	"github.com/silinternational/terra/log"
	"github.com/silinternational/terra/models"
)

// AuthN identifies the user by bearer token or, failing that, by the session
func AuthN(next buffalo.Handler) buffalo.Handler {
	return func(c buffalo.Context) error {
		tx := models.Tx(c)

		var user models.User
		if bearerToken := domain.GetBearerTokenFromRequest(c.Request()); bearerToken != "" {
			var err error
			if user, err = userFromBearerToken(c, bearerToken); err != nil {
				return reportError(c, err)
			}
		} else if id, ok := c.Session().Get(domain.SessionKeyUserID).(string); ok {
			if err := user.FindByID(tx, uuid.FromStringOrNil(id)); err != nil {
				c.Session().Delete(domain.SessionKeyUserID)
				return notAuthenticated(c, errors.New("session user not found"))
			}
		} else {
			return notAuthenticated(c, errors.New("no bearer token or session provided"))
		}

		c.Set(domain.ContextKeyCurrentUser, user)

		log.SetUser(user.ID.String(), user.Name(), user.Email)
		domain.NewExtra(c, "user_id", user.ID)
		domain.NewExtra(c, "email", user.Email)
		domain.NewExtra(c, "ip", c.Request().RemoteAddr)

		return next(c)
	}
}

func userFromBearerToken(c buffalo.Context, bearerToken string) (models.User, error) {
	tx := models.Tx(c)

	var userAccessToken models.UserAccessToken
	if err := userAccessToken.FindByBearerToken(tx, bearerToken); err != nil {
		var appErr *api.AppError
		if errors.As(err, &appErr) && appErr.Category == api.CategoryDatabase {
			return models.User{}, err
		}
		err = fmt.Errorf("invalid bearer token: %w", err)
		return models.User{}, api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryUnauthorized)
	}

	isExpired, err := userAccessToken.DeleteIfExpired(tx)
	if err != nil {
		return models.User{}, err
	}
	if isExpired {
		err = errors.New("expired bearer token")
		return models.User{}, api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryUnauthorized)
	}

	user, err := userAccessToken.GetUser(tx)
	if err != nil {
		return models.User{}, fmt.Errorf("error finding user by access token, %w", err)
	}
	userAccessToken.Touch(tx)

	return user, nil
}

// notAuthenticated sends browsers to the login page and returns 401 to everyone else
func notAuthenticated(c buffalo.Context, err error) error {
	appErr := api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryUnauthorized)

	if strings.Contains(c.Request().Header.Get("Accept"), "text/html") {
		appErr.HttpStatus = http.StatusFound
		appErr.RedirectURL = "/auth/login?" + ReturnToParam + "=" + url.QueryEscape(c.Request().URL.RequestURI())
	}
	return reportError(c, appErr)
}
