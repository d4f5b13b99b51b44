package adminRoutes

import (
	adminController "marrynow/controllers/admin"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App, ctrl *adminController.Controller) {
	adminGroup := app.Group("/admin")

	adminGroup.Get("/dashboard", ctrl.Dashboard)
}
