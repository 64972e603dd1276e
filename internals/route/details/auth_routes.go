package details

import (
	"github.com/gofiber/fiber/v2"

	authController "github.com/AungS8430/schooler/internals/features/users/auth/controller"
	authRoute "github.com/AungS8430/schooler/internals/features/users/auth/route"
	authService "github.com/AungS8430/schooler/internals/features/users/auth/service"
	helperAuth "github.com/AungS8430/schooler/internals/helpers/auth"
)

type AuthDeps struct {
	OAuth         authService.Exchanger
	Verifier      authService.IDTokenVerifier
	Accounts      authController.AccountUpserter
	Signer        *helperAuth.Signer
	AllowedDomain string
	SecureCookies bool
}

func AuthRoutes(app *fiber.App, d AuthDeps) {
	ctrl := authController.NewAuthController(d.OAuth, d.Verifier, d.Accounts, d.Signer, d.AllowedDomain, d.SecureCookies)
	authRoute.AuthRoutes(app, ctrl)
}
