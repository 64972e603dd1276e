// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AungS8430/schooler/internals/clients/schoolapi"
	"github.com/AungS8430/schooler/internals/configs"
	"github.com/AungS8430/schooler/internals/features/school/schedule/export"
	ttService "github.com/AungS8430/schooler/internals/features/school/schedule/timetable/service"
	authService "github.com/AungS8430/schooler/internals/features/users/auth/service"
	helperAuth "github.com/AungS8430/schooler/internals/helpers/auth"
	"github.com/AungS8430/schooler/internals/middlewares"
	authMw "github.com/AungS8430/schooler/internals/middlewares/auth"
	routeDetails "github.com/AungS8430/schooler/internals/route/details"
)

var startTime time.Time

// Deps is everything the handlers are built from.
type Deps struct {
	Settings   configs.Settings
	API        *schoolapi.Client
	Signer     *helperAuth.Signer
	OAuth      authService.Exchanger
	Verifier   authService.IDTokenVerifier
	Selections *ttService.SelectionStore
	Exporter   *export.Exporter
	Loc        *time.Location
	Done       <-chan struct{} // closed on shutdown
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app)

	// session → gate → csrf for everything below
	secure := d.Settings.SecureCookies()
	app.Use(
		authMw.LoadSession(authMw.SessionOpts{Signer: d.Signer, SecureCookies: secure}),
		authMw.Gate(),
		middlewares.CSRFMiddleware(secure),
	)

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, routeDetails.AuthDeps{
		OAuth:         d.OAuth,
		Verifier:      d.Verifier,
		Accounts:      d.API,
		Signer:        d.Signer,
		AllowedDomain: d.Settings.AllowedDomain,
		SecureCookies: secure,
	})

	// ===================== PAGES =====================
	log.Println("[INFO] Setting up page routes...")
	routeDetails.HomeRoutes(app, d.API, d.Loc)
	pages := app.Group("/app")
	routeDetails.SchoolPageRoutes(pages, routeDetails.SchoolDeps{
		API:        d.API,
		Selections: d.Selections,
		Exporter:   d.Exporter,
		Loc:        d.Loc,
		Done:       d.Done,
	})
	routeDetails.SettingsRoutes(pages, secure)

	// ===================== JSON API (CORS) =====================
	log.Println("[INFO] Setting up /api group...")
	api := app.Group("/api", middlewares.CorsMiddleware(d.Settings.CORSOrigins), middlewares.GlobalRateLimiter())
	routeDetails.SchoolAPIRoutes(api, routeDetails.SchoolDeps{
		API:        d.API,
		Selections: d.Selections,
		Exporter:   d.Exporter,
		Loc:        d.Loc,
		Done:       d.Done,
	})
}
