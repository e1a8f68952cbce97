package actions

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gobuffalo/buffalo"
	"github.com/gofrs/uuid"

	"github.com/silinternational/terra/api"
	"github.com/silinternational/terra/domain"
	"github.com/silinternational/terra/models"
)

// AuthZ loads the resource named by the request path, checks the current user's permission on it, and
// places it in the context under the resource name
func AuthZ(next buffalo.Handler) buffalo.Handler {
	return func(c buffalo.Context) error {
		authableResources := map[string]models.Authable{
			domain.TypeActualExpense:    &models.ActualExpense{},
			domain.TypeApproval:         &models.Approval{},
			domain.TypeEmployee:         &models.Employee{},
			domain.TypeEstimatedExpense: &models.EstimatedExpense{},
			domain.TypeFund:             &models.Fund{},
			domain.TypeTravelRequest:    &models.TravelRequest{},
			domain.TypeUnit:             &models.Unit{},
		}

		actor, ok := c.Value(domain.ContextKeyCurrentUser).(models.User)
		if !ok {
			err := fmt.Errorf("actor must be authenticated to proceed")
			return reportError(c, api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryUnauthorized))
		}

		rName, rID, rSub, partsCount := getResourceIDSubresource(c.Request().URL.Path)
		if rID == uuid.Nil && partsCount > 1 {
			err := fmt.Errorf("invalid resource ID, not a UUID")
			appErr := api.NewAppError(err, api.ErrorInvalidResourceID, api.CategoryUser)
			return reportError(c, appErr)
		}

		resource, isAuthable := authableResources[rName]
		if !isAuthable {
			return reportError(c, fmt.Errorf("resource %q expected to be authable but isn't", rName))
		}

		tx := models.Tx(c)

		if rID != uuid.Nil {
			if err := resource.FindByID(tx, rID); err != nil {
				err = fmt.Errorf("failed to load resource: %w", err)
				appErr := api.NewAppError(err, api.ErrorResourceNotFound, api.CategoryNotFound)
				if domain.IsOtherThanNoRows(err) {
					appErr.Category = api.CategoryInternal
				}
				return reportError(c, appErr)
			}
		}

		var p models.Permission

		switch c.Request().Method {
		case http.MethodGet:
			p = models.PermissionList
			if rID != uuid.Nil {
				p = models.PermissionView
			}
		case http.MethodPost:
			p = models.PermissionCreate
		case http.MethodPut:
			p = models.PermissionUpdate
		case http.MethodDelete:
			p = models.PermissionDelete
		default:
			p = models.PermissionDenied
		}

		if !resource.IsActorAllowedTo(tx, actor, p, models.SubResource(rSub), limitedRequest(c.Request())) {
			err := fmt.Errorf("actor not allowed to perform that action on this resource")
			return reportError(c, api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryForbidden))
		}

		if resource.GetID() != uuid.Nil {
			c.Set(rName, resource)
		}

		return next(c)
	}
}

// AdminOnly rejects users without the admin role
func AdminOnly(next buffalo.Handler) buffalo.Handler {
	return func(c buffalo.Context) error {
		actor := models.CurrentUser(c)
		if !actor.IsAdmin() {
			err := errors.New("admin role required")
			return reportError(c, api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryForbidden))
		}
		return next(c)
	}
}

// limitedRequest returns a new *http.Request with most information about the request, excluding
// Body and Forms that read from Body to ensure the Body content is still available for later processing
func limitedRequest(req *http.Request) *http.Request {
	return &http.Request{
		Method:           req.Method,
		URL:              req.URL,
		Proto:            req.Proto,
		ProtoMajor:       req.ProtoMajor,
		ProtoMinor:       req.ProtoMinor,
		Header:           req.Header,
		ContentLength:    req.ContentLength,
		TransferEncoding: req.TransferEncoding,
		Host:             req.Host,
		RemoteAddr:       req.RemoteAddr,
		RequestURI:       req.RequestURI,
	}
}

func getResourceIDSubresource(path string) (string, uuid.UUID, string, int) {
	resource, id, sub, partsCount := "", uuid.Nil, "", 0

	cleanPath := strings.Trim(path, "/")
	if cleanPath == "" {
		return resource, id, sub, partsCount
	}

	pathParts := strings.Split(cleanPath, "/")
	partsCount = len(pathParts)
	resource = pathParts[0]

	if partsCount > 1 {
		id = uuid.FromStringOrNil(pathParts[1])
	}

	if partsCount > 2 && id != uuid.Nil {
		sub = pathParts[2]
	}

	return resource, id, sub, partsCount
}
