package actions

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/terra/api"
	"github.com/silinternational/terra/auth/saml"
	"github.com/silinternational/terra/domain"
	"github.com/silinternational/terra/log"
	"github.com/silinternational/terra/models"
)

const (
	// http param for access token
	AccessTokenParam = "access-token"

	// logout http param for what is normally the bearer token
	LogoutToken = "token"

	// http param and session key for ReturnTo
	ReturnToParam      = "return-to"
	ReturnToSessionKey = "ReturnTo"

	// http param for token type
	TokenTypeParam = "token-type"

	defaultReturnTo = "/dashboard"
)

// swagger:operation GET /auth/login Authentication AuthLogin
// AuthLogin
//
// Start the SAML login process
// ---
//
//	parameters:
//	- name: return-to
//	  in: query
//	  required: false
//	  description: path to visit after login
//	responses:
//	  '302':
//	    description: redirect to the identity provider
//	  '200':
//	    description: returns a "RedirectURL" key with the saml idp url, for clients that do not accept HTML
func authLogin(c buffalo.Context) error {
	returnTo := safeReturnTo(c.Param(ReturnToParam))
	if err := sessionSetValue(c, ReturnToSessionKey, returnTo); err != nil {
		log.Errorf("failed to set %s in session: %s", ReturnToSessionKey, err)
	}

	sp, err := saml.New(saml.NewConfigFromEnv())
	if err != nil {
		err = fmt.Errorf("unable to load saml auth provider: %w", err)
		return reportErrorAndClearSession(c, api.NewAppError(err, api.ErrorLoadingAuthProvider, api.CategoryInternal))
	}

	redirectURL, err := sp.AuthRequest(returnTo)
	if err != nil {
		err = fmt.Errorf("unable to build the saml authentication url: %w", err)
		return reportErrorAndClearSession(c, api.NewAppError(err, api.ErrorGettingAuthURL, api.CategoryInternal))
	}

	if strings.Contains(c.Request().Header.Get("Accept"), "text/html") {
		return c.Redirect(http.StatusFound, redirectURL)
	}

	// Leave it to the UI to do the redirect
	return renderOk(c, map[string]string{"RedirectURL": redirectURL})
}

// swagger:operation POST /auth/callback Authentication AuthCallback
// AuthCallback
//
// Consume the SAML assertion and finish login
// ---
//
//	responses:
//	  '302':
//	    description: redirect to the return-to path with an access token
func authCallback(c buffalo.Context) error {
	sp, err := saml.New(saml.NewConfigFromEnv())
	if err != nil {
		err = fmt.Errorf("unable to load saml auth provider in auth callback: %w", err)
		return reportErrorAndClearSession(c, api.NewAppError(err, api.ErrorLoadingAuthProvider, api.CategoryInternal))
	}

	authResp := sp.AuthCallback(c)
	if authResp.Error != nil {
		err = fmt.Errorf("auth response error: %w", authResp.Error)
		return reportErrorAndClearSession(c, api.NewAppError(err, api.ErrorAuthProvidersCallback, api.CategoryInternal))
	}

	if authResp.AuthUser == nil {
		if authResp.RedirectURL != "" {
			return c.Redirect(http.StatusFound, authResp.RedirectURL)
		}
		appErr := api.NewAppError(errors.New("nil authResp.AuthUser"), api.ErrorAuthProvidersCallback,
			api.CategoryUser)
		appErr.HttpStatus = http.StatusFound
		return reportErrorAndClearSession(c, appErr)
	}

	returnTo, err := sessionGetString(c, ReturnToSessionKey)
	if err != nil {
		returnTo = safeReturnTo(c.Param("RelayState"))
	}

	var user models.User
	tx := models.Tx(c)
	authUser := authResp.AuthUser
	if err := user.FindOrCreateFromAuthUser(tx, authUser); err != nil {
		var appErr *api.AppError
		if !errors.As(err, &appErr) {
			appErr = api.NewAppError(err, api.ErrorWithAuthUser, api.CategoryInternal)
		}
		return reportErrorAndClearSession(c, appErr)
	}
	authUser.IsNew = time.Since(user.CreatedAt) < time.Second*30

	uat, err := user.CreateAccessToken(tx)
	if err != nil {
		return reportErrorAndClearSession(c, api.NewAppError(err, api.ErrorCreatingAccessToken, api.CategoryInternal))
	}
	authUser.AccessToken = uat.AccessToken
	authUser.AccessTokenExpiresAt = uat.ExpiresAt.UTC().Unix()

	// login was a success, start a new session for the user
	c.Session().Clear()
	if err := sessionSetValue(c, domain.SessionKeyUserID, user.ID.String()); err != nil {
		return reportError(c, err)
	}

	log.SetUser(user.ID.String(), user.Name(), user.Email)
	log.WithFields(map[string]any{"user_id": user.ID, "new": authUser.IsNew}).Info("user logged in")

	return c.Redirect(http.StatusFound, getLoginSuccessRedirectURL(authUser.AccessToken, returnTo))
}

// getLoginSuccessRedirectURL generates the URL for redirection after a successful login
func getLoginSuccessRedirectURL(accessToken, returnTo string) string {
	params := fmt.Sprintf("%s=Bearer&%s=%s", TokenTypeParam, AccessTokenParam, url.QueryEscape(accessToken))

	if strings.Contains(returnTo, "?") {
		return returnTo + "&" + params
	}
	return returnTo + "?" + params
}

// safeReturnTo only accepts a local path, to avoid redirecting to another site
func safeReturnTo(returnTo string) string {
	if !strings.HasPrefix(returnTo, "/") || strings.HasPrefix(returnTo, "//") {
		return defaultReturnTo
	}
	return returnTo
}

// swagger:operation GET /auth/logout Authentication AuthLogout
// AuthLogout
//
// Logout of application
// ---
//
//	parameters:
//	- name: token
//	  in: query
//	  required: false
//	  description: the user's bearer token, also accepted in the Authorization header
//	responses:
//	  '302':
//	    description: redirect to the identity provider logout, then the UI
func authLogout(c buffalo.Context) error {
	token := c.Param(LogoutToken)
	if token == "" {
		token = domain.GetBearerTokenFromRequest(c.Request())
	}

	tx := models.Tx(c)
	if token != "" {
		var uat models.UserAccessToken
		if err := uat.DeleteByBearerToken(tx, token); err != nil {
			var appErr *api.AppError
			if errors.As(err, &appErr) && appErr.Category == api.CategoryDatabase {
				return reportErrorAndClearSession(c, err)
			}
			log.Warningf("logout with unknown access token: %s", err)
		}
	}

	if err := clearSession(c); err != nil {
		return reportError(c, err)
	}

	// logout only needs the identity provider URLs, not the certificates
	sp := &saml.Provider{Config: saml.NewConfigFromEnv()}
	authResp := sp.Logout()
	if authResp.Error != nil {
		return reportError(c, api.NewAppError(authResp.Error, api.ErrorAuthProvidersLogout, api.CategoryInternal))
	}

	redirectURL := domain.LogoutRedirectURL
	if authResp.RedirectURL != "" {
		redirectURL = authResp.RedirectURL
	}
	return c.Redirect(http.StatusFound, redirectURL)
}
