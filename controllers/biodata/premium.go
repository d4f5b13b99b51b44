package biodataController

import (
	"context"

	"marrynow/middleware"
	"marrynow/models"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// PendingPremium is the admin queue of premium requests.
func (ctrl *Controller) PendingPremium(c *fiber.Ctx) error {
	biodatas, err := ctrl.Store.ListBiodatas(c.UserContext(), models.BiodataFilter{Status: models.StatusPending})
	if err != nil {
		return middleware.ServerError(c, err, "Failed to fetch pending requests!")
	}
	return c.JSON(biodatas)
}

// RequestPremium moves a biodata to pending. Any prior status is accepted.
func (ctrl *Controller) RequestPremium(c *fiber.Ctx) error {
	biodataID, err := models.ParseBiodataID(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid biodataId!", nil)
	}

	result, err := ctrl.Store.SetBiodataStatus(c.UserContext(), models.ProfileKey{BiodataID: biodataID}, models.StatusPending)
	if err != nil {
		return middleware.ServerError(c, err, "Failed to request premium!")
	}
	if result.MatchedCount == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Biodata not found!", nil)
	}
	return c.JSON(result)
}

// ApprovePremium marks a biodata premium. The key is an owner email when it
// contains "@" and a biodataId otherwise.
func (ctrl *Controller) ApprovePremium(c *fiber.Ctx) error {
	key, err := models.ParseProfileKey(c.Params("idOrEmail"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid biodataId or email!", nil)
	}
	ctx := c.UserContext()

	result, err := ctrl.Store.SetBiodataStatus(ctx, key, models.StatusPremium)
	if err != nil {
		return middleware.ServerError(c, err, "Failed to approve premium!")
	}
	if result.MatchedCount == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Biodata not found!", nil)
	}

	if result.ModifiedCount > 0 {
		ctrl.notifyPremium(ctx, key)
	}
	return c.JSON(result)
}

func (ctrl *Controller) notifyPremium(ctx context.Context, key models.ProfileKey) {
	var (
		biodata *models.Biodata
		err     error
	)
	if key.ByEmail() {
		biodata, err = ctrl.Store.FindBiodataByEmail(ctx, key.Email)
	} else {
		biodata, err = ctrl.Store.FindBiodataByID(ctx, key.BiodataID)
	}
	if err != nil || biodata == nil {
		log.Warn().Err(err).Str("key", key.String()).Msg("premium approved but biodata not reloaded")
		return
	}
	ctrl.Notifier.PremiumApproved(*biodata)
}
