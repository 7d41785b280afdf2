package server

import (
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/yamanekazuki/hr-qa-assistant/internal/bootstrap"
	"github.com/yamanekazuki/hr-qa-assistant/internal/controller"
	"github.com/yamanekazuki/hr-qa-assistant/internal/pkg/serverutils"
)

// New assembles the Fiber app: middleware chain, REST routes, and the
// websocket session stream.
func New(c *bootstrap.Container) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "hr-qa-assistant",
		DisableStartupMessage: c.Config.App.Environment == "production",
	})

	app.Use(recover.New())
	app.Use(otelfiber.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     c.Config.App.CorsAllowedOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))
	app.Use(serverutils.ErrorHandlerMiddleware())

	app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Get("/google", c.OAuthController.GoogleLogin)
	auth.Get("/google/callback", c.OAuthController.GoogleCallback)
	auth.Get("/me", serverutils.JwtMiddleware, c.OAuthController.Me)

	assistant := api.Group("/assistant/v1", serverutils.JwtMiddleware)
	assistant.Post("/ask", c.AssistantController.Ask)
	assistant.Get("/session", c.AssistantController.SessionState)
	assistant.Put("/granularity", c.AssistantController.SetGranularity)
	assistant.Put("/query", c.AssistantController.SetQueryText)
	assistant.Get("/faq", c.AssistantController.FAQ)
	assistant.Get("/faq/match", c.AssistantController.MatchFAQ)

	admin := api.Group("/admin/v1", serverutils.JwtMiddleware, controller.AdminOnly)
	admin.Get("/history", c.AdminController.History)
	admin.Get("/stats", c.AdminController.Stats)
	admin.Get("/logs", c.AdminController.Logs)

	app.Get("/api/assistant/v1/ws", c.SessionHandler.Upgrade, c.SessionHandler.Serve())

	return app
}
