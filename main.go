package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"github.com/AungS8430/schooler/internals/clients/schoolapi"
	"github.com/AungS8430/schooler/internals/configs"
	"github.com/AungS8430/schooler/internals/features/school/schedule/export"
	ttService "github.com/AungS8430/schooler/internals/features/school/schedule/timetable/service"
	authService "github.com/AungS8430/schooler/internals/features/users/auth/service"
	helper "github.com/AungS8430/schooler/internals/helpers"
	helperAuth "github.com/AungS8430/schooler/internals/helpers/auth"
	"github.com/AungS8430/schooler/internals/helpers/cache"
	"github.com/AungS8430/schooler/internals/helpers/clock"
	middlewares "github.com/AungS8430/schooler/internals/middlewares"
	routes "github.com/AungS8430/schooler/internals/route"
	"github.com/AungS8430/schooler/internals/views"
)

func main() {
	configs.LoadEnv()
	cfg := configs.Current()

	keys, err := helperAuth.DeriveKeys(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("session keys: %v", err)
	}

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		Views:                   views.Engine(),
		PassLocalsToViews:       true,
		ErrorHandler:            helper.ErrorHandler,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	middlewares.SetupMiddlewares(app, cfg)

	// School API client + per-user timetable selection + exporter
	api := schoolapi.New(schoolapi.Config{
		BaseURL:        cfg.APIBaseURL,
		Timeout:        cfg.APITimeout,
		InternalSecret: cfg.InternalAPISecret,
		CacheTTL:       cfg.CacheTTL,
	})
	exporter := export.NewExporter(nil, cfg.CacheTTL)

	// ⏱ cache janitor
	janitor, err := cache.StartJanitor(cfg.CacheJanitorCron, append(api.Purgers(), exporter.Purger())...)
	if err != nil {
		log.Fatalf("cache janitor: %v", err)
	}

	done := make(chan struct{})
	routes.SetupRoutes(app, routes.Deps{
		Settings: cfg,
		API:      api,
		Signer:   helperAuth.NewSigner(keys),
		OAuth: authService.NewGoogleOAuth(authService.GoogleConfig{
			ClientID:      cfg.GoogleClientID,
			ClientSecret:  cfg.GoogleClientSecret,
			RedirectURL:   cfg.GoogleRedirectURI,
			AllowedDomain: cfg.AllowedDomain,
		}),
		Verifier:   authService.GoogleVerifier{ClientID: cfg.GoogleClientID},
		Selections: ttService.NewSelectionStore(api),
		Exporter:   exporter,
		Loc:        clock.Location(cfg.AppTimezone),
		Done:       done,
	})

	// Keep-Alive & timeouts; WriteTimeout stays off for event streams
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Printf("✅ Listening on :%s", cfg.Port)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown: end live streams, stop the janitor, drain requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	close(done)
	<-janitor.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
}
