package successStoryController

import (
	"marrynow/database"
	"marrynow/middleware"
	successStoryValidator "marrynow/validators/successStory"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	Store database.Store
}

func New(store database.Store) *Controller {
	return &Controller{Store: store}
}

func (ctrl *Controller) CreateSuccessStory(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSuccessStory").(*successStoryValidator.SuccessStoryRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result, err := ctrl.Store.InsertSuccessStory(c.UserContext(), reqData.Model())
	if err != nil {
		return middleware.ServerError(c, err, "Failed to post story!")
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// ListSuccessStories returns every story, newest marriage first.
func (ctrl *Controller) ListSuccessStories(c *fiber.Ctx) error {
	stories, err := ctrl.Store.ListSuccessStories(c.UserContext())
	if err != nil {
		return middleware.ServerError(c, err, "Failed to fetch stories!")
	}
	return c.JSON(stories)
}

// ListSuccessStoriesFull joins each story with both partners' biodatas.
// Stories referencing a missing biodata are left out.
func (ctrl *Controller) ListSuccessStoriesFull(c *fiber.Ctx) error {
	stories, err := ctrl.Store.ListSuccessStoriesFull(c.UserContext())
	if err != nil {
		return middleware.ServerError(c, err, "Internal server error!")
	}
	return c.JSON(stories)
}
