// Terra API
//
// Travel requests, approvals, and expenses for library staff.
//
//	Schemes: https
//	Host: localhost
//	BasePath: /
//	Version: 0.0.1
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//	- text/csv
//
//	Security:
//	- bearer:
//
// swagger:meta
package actions

import (
	"github.com/gobuffalo/buffalo"
	"github.com/gobuffalo/buffalo-pop/v3/pop/popmw"
	contenttype "github.com/gobuffalo/mw-contenttype"
	i18n "github.com/gobuffalo/mw-i18n/v2"
	paramlogger "github.com/gobuffalo/mw-paramlogger"
	"github.com/gorilla/sessions"
	"github.com/rs/cors"

	"github.com/silinternational/terra/domain"
	"github.com/silinternational/terra/listeners"
	"github.com/silinternational/terra/locales"
	"github.com/silinternational/terra/log"
	"github.com/silinternational/terra/models"
)

var app *buffalo.App

// App is where all routes and middleware for buffalo
// should be defined. This is the nerve center of your
// application.
//
// Routing, middleware, groups, etc... are declared TOP -> DOWN.
// This means if you add a middleware to `app` *after* declaring a
// group, that group will NOT have that new middleware. The same
// is true of resource declarations as well.
func App() *buffalo.App {
	if app == nil {
		app = buffalo.New(buffalo.Options{
			Env: domain.Env.GoEnv,
			PreWares: []buffalo.PreWare{
				cors.New(cors.Options{
					AllowCredentials: true,
					AllowedOrigins:   []string{domain.Env.UIURL},
					AllowedMethods:   []string{"HEAD", "GET", "POST", "PUT", "PATCH", "DELETE"},
					AllowedHeaders:   []string{"*"},
				}).Handler,
			},
			SessionName:  "_terra_session",
			SessionStore: sessions.NewCookieStore([]byte(domain.Env.SessionSecret)),
		})

		registerCustomErrorHandler(app)

		var err error
		domain.T, err = i18n.New(locales.FS(), "en-US")
		if err != nil {
			_ = app.Stop(err)
		}
		app.Use(domain.T.Middleware())

		// Attach a Sentry hub to the request context and recover panics
		app.Use(log.SentryMiddleware)

		// Log request parameters (filters apply).
		app.Use(paramlogger.ParameterLogger)

		// Set the request content type to JSON
		app.Use(contenttype.Set("application/json"))

		// Wraps each request in a transaction.
		app.Use(popmw.Transaction(models.DB))

		app.Use(AuthN)
		app.Middleware.Skip(AuthN, homeHandler, statusHandler, authLogin, authCallback, authLogout)

		app.GET("/", homeHandler)
		app.GET("/status", statusHandler)

		auth := app.Group("/auth")
		auth.GET("/login", authLogin)
		auth.POST("/callback", authCallback)
		auth.GET("/logout", authLogout)

		app.GET("/dashboard", dashboardHandler)

		config := app.Group("/config")
		config.GET("/approval-types", approvalTypes)
		config.GET("/expense-types", expenseTypes)
		config.GET("/unit-types", unitTypes)

		users := app.Group("/users")
		users.GET("/me", usersMe)

		units := app.Group("/" + domain.TypeUnit)
		units.Use(AuthZ)
		units.GET("/", unitsList)
		units.GET("/{id}", unitsView)
		units.GET("/{id}/report", unitsReport)
		units.DELETE("/{id}", unitsDelete)

		funds := app.Group("/" + domain.TypeFund)
		funds.Use(AuthZ)
		funds.GET("/", fundsList)
		funds.GET("/{id}", fundsView)
		funds.GET("/{id}/report", fundsReport)

		employees := app.Group("/" + domain.TypeEmployee)
		employees.Use(AuthZ)
		employees.GET("/{id}", employeesView)

		travelRequests := app.Group("/" + domain.TypeTravelRequest)
		travelRequests.Use(AuthZ)
		travelRequests.GET("/", travelRequestsList)
		travelRequests.GET("/{id}", travelRequestsView)
		travelRequests.PUT("/{id}/close", travelRequestsClose)
		travelRequests.POST("/{id}/"+domain.TypeApproval, approvalsCreate)
		travelRequests.POST("/{id}/"+domain.TypeEstimatedExpense, estimatedExpensesCreate)
		travelRequests.POST("/{id}/"+domain.TypeActualExpense, actualExpensesCreate)
		travelRequests.POST("/{id}/"+domain.TypeVacation, vacationsCreate)

		approvals := app.Group("/" + domain.TypeApproval)
		approvals.Use(AuthZ)
		approvals.DELETE("/{id}", approvalsDelete)

		estimatedExpenses := app.Group("/" + domain.TypeEstimatedExpense)
		estimatedExpenses.Use(AuthZ)
		estimatedExpenses.PUT("/{id}", estimatedExpensesUpdate)
		estimatedExpenses.DELETE("/{id}", estimatedExpensesDelete)

		actualExpenses := app.Group("/" + domain.TypeActualExpense)
		actualExpenses.Use(AuthZ)
		actualExpenses.PUT("/{id}", actualExpensesUpdate)
		actualExpenses.DELETE("/{id}", actualExpensesDelete)

		imports := app.Group("/" + domain.TypeImport)
		imports.Use(AdminOnly)
		imports.GET("/", importsList)
		imports.POST("/{kind}", importsCreate)

		listeners.RegisterListeners()
	}

	return app
}
