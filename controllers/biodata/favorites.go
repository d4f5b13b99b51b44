package biodataController

import (
	"strings"

	"marrynow/middleware"
	"marrynow/models"
	biodataValidator "marrynow/validators/biodata"

	"github.com/gofiber/fiber/v2"
)

// AddFavorite adds a biodata to the user's favorites. Adding it twice
// leaves a single entry.
func (ctrl *Controller) AddFavorite(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedFavorite").(*biodataValidator.AddFavoriteRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result, err := ctrl.Store.AddFavorite(c.UserContext(), reqData.UserEmail, reqData.BiodataID.Int())
	if err != nil {
		return middleware.ServerError(c, err, "Failed to add favorite!")
	}
	if result.MatchedCount == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}
	return c.JSON(result)
}

// Favorites returns the biodatas a user marked. A user without a favorites
// field gets an empty list.
func (ctrl *Controller) Favorites(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Email is required!", nil)
	}
	ctx := c.UserContext()

	user, err := ctrl.Store.FindUserByEmail(ctx, email)
	if err != nil {
		return middleware.ServerError(c, err, "Failed to fetch favorites!")
	}
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}
	if len(user.Favorites) == 0 {
		return c.JSON([]models.Biodata{})
	}

	biodatas, err := ctrl.Store.FindBiodatasByIDs(ctx, user.Favorites)
	if err != nil {
		return middleware.ServerError(c, err, "Failed to fetch favorites!")
	}
	return c.JSON(biodatas)
}
