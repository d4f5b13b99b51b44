package server

import (
	"marrynow/config"
	adminController "marrynow/controllers/admin"
	biodataController "marrynow/controllers/biodata"
	contactRequestController "marrynow/controllers/contactRequest"
	successStoryController "marrynow/controllers/successStory"
	userController "marrynow/controllers/userControllers"
	"marrynow/database"
	"marrynow/middleware"
	"marrynow/routers/adminRoutes"
	"marrynow/routers/biodataRoutes"
	"marrynow/routers/contactRequestRoutes"
	"marrynow/routers/successStoryRoutes"
	"marrynow/routers/userRoutes"
	"marrynow/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the long-lived collaborators shared by every handler.
type Deps struct {
	Store    database.Store
	Gateway  utils.PaymentGateway
	Notifier utils.Notifier
}

// New builds the HTTP application with every route registered.
func New(cfg *config.Config, deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "marrynow",
		// emails arrive percent-encoded in path params
		UnescapePath: true,
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(fiberRecover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CorsOrigins,
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("marry now is ongoing")
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	userRoutes.SetupUserRoutes(app, userController.New(deps.Store))
	biodataRoutes.SetupBiodataRoutes(app, biodataController.New(deps.Store, deps.Notifier))
	successStoryRoutes.SetupSuccessStoryRoutes(app, successStoryController.New(deps.Store))
	contactRequestRoutes.SetupContactRequestRoutes(app,
		contactRequestController.New(deps.Store, deps.Gateway, deps.Notifier, cfg.Currency))
	adminRoutes.SetupAdminRoutes(app, adminController.New(deps.Store))

	app.Use(func(c *fiber.Ctx) error {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Route not found!", nil)
	})

	return app
}
