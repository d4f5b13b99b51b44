package userRoutes

import (
	userController "marrynow/controllers/userControllers"
	userValidator "marrynow/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, ctrl *userController.Controller) {
	userGroup := app.Group("/users")

	userGroup.Post("/", userValidator.CreateUser(), ctrl.CreateUser)
	userGroup.Patch("/remove-favorite", userValidator.RemoveFavorite(), ctrl.RemoveFavorite)
	userGroup.Patch("/admin/:id", ctrl.MakeAdmin)
	userGroup.Get("/:email/role", ctrl.GetRole)

	app.Get("/all-users-with-biodata-status", ctrl.UsersWithBiodataStatus)
}
