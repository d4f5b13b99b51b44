package successStoryRoutes

import (
	successStoryController "marrynow/controllers/successStory"
	successStoryValidator "marrynow/validators/successStory"

	"github.com/gofiber/fiber/v2"
)

func SetupSuccessStoryRoutes(app *fiber.App, ctrl *successStoryController.Controller) {
	storyGroup := app.Group("/successStories")

	storyGroup.Post("/", successStoryValidator.CreateSuccessStory(), ctrl.CreateSuccessStory)
	storyGroup.Get("/", ctrl.ListSuccessStories)
	storyGroup.Get("/full", ctrl.ListSuccessStoriesFull)
}
