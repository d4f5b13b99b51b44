package contactRequestRoutes

import (
	contactRequestController "marrynow/controllers/contactRequest"
	contactRequestValidator "marrynow/validators/contactRequest"

	"github.com/gofiber/fiber/v2"
)

func SetupContactRequestRoutes(app *fiber.App, ctrl *contactRequestController.Controller) {
	app.Post("/checkout/request-contact", contactRequestValidator.RequestContact(), ctrl.RequestContact)

	contactGroup := app.Group("/contact-requests")

	contactGroup.Get("/", ctrl.PendingRequests)
	contactGroup.Patch("/approve/:id", ctrl.Approve)
	contactGroup.Delete("/delete/:biodataId", ctrl.Delete)
	contactGroup.Get("/:userEmail", ctrl.UserRequests)
}
