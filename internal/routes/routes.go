package routes

import (
	"github.com/fathima-sithara/files-service/internal/handlers"
	"github.com/fathima-sithara/files-service/internal/middleware"
	"github.com/fathima-sithara/files-service/internal/services"
	"github.com/gofiber/fiber/v2"
)

// Register wires every route onto app. connectLimiter may be nil (tests,
// single-process dev without a limiter).
func Register(app *fiber.App, auth *services.AuthService, appH *handlers.AppHandler, authH *handlers.AuthHandler, filesH *handlers.FilesHandler, connectLimiter fiber.Handler) {
	requireToken := middleware.RequireToken(auth)
	optionalToken := middleware.OptionalToken(auth)

	app.Get("/status", appH.Status)
	app.Get("/stats", appH.Stats)

	app.Post("/users", authH.Register)
	if connectLimiter != nil {
		app.Get("/connect", connectLimiter, authH.Connect)
	} else {
		app.Get("/connect", authH.Connect)
	}
	app.Get("/disconnect", authH.Disconnect)
	app.Get("/users/me", requireToken, authH.Me)

	app.Post("/files", requireToken, filesH.Upload)
	app.Get("/files/:id/data", optionalToken, filesH.Data)
	app.Put("/files/:id/data", optionalToken, filesH.Data)
	app.Get("/files/:id", requireToken, filesH.Show)
	app.Get("/files", requireToken, filesH.Index)
	app.Put("/files/:id/publish", requireToken, filesH.Publish)
	app.Put("/files/:id/unpublish", requireToken, filesH.Unpublish)
}
