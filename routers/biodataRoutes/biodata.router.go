package biodataRoutes

import (
	biodataController "marrynow/controllers/biodata"
	biodataValidator "marrynow/validators/biodata"

	"github.com/gofiber/fiber/v2"
)

func SetupBiodataRoutes(app *fiber.App, ctrl *biodataController.Controller) {
	biodataGroup := app.Group("/bioDatas")

	biodataGroup.Get("/", ctrl.ListBiodatas)
	biodataGroup.Post("/", biodataValidator.CreateBiodata(), ctrl.CreateBiodata)

	// static segments before /:email
	biodataGroup.Get("/pending-premium", ctrl.PendingPremium)
	biodataGroup.Get("/premium-members", ctrl.PremiumMembers)
	biodataGroup.Get("/stats", ctrl.Stats)
	biodataGroup.Get("/favorites", ctrl.Favorites)
	biodataGroup.Post("/favorites", biodataValidator.AddFavorite(), ctrl.AddFavorite)
	biodataGroup.Get("/by-id/:biodataId", ctrl.GetBiodataByID)
	biodataGroup.Patch("/premium-request/:id", ctrl.RequestPremium)
	biodataGroup.Patch("/approve-premium/:idOrEmail", ctrl.ApprovePremium)

	biodataGroup.Get("/:email", ctrl.GetBiodataByEmail)
	biodataGroup.Patch("/:email", biodataValidator.UpdateBiodata(), ctrl.UpdateBiodataByEmail)

	app.Get("/biodata/similar/:biodataType", ctrl.Similar)
}
