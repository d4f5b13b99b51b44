package adminController

import (
	"marrynow/database"
	"marrynow/middleware"
	"marrynow/models"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

type Controller struct {
	Store database.Store
}

func New(store database.Store) *Controller {
	return &Controller{Store: store}
}

// Dashboard reports biodata counts, revenue from approved contact requests
// and the number of contact requests made since local midnight.
func (ctrl *Controller) Dashboard(c *fiber.Ctx) error {
	ctx := c.UserContext()
	fail := func(err error) error {
		return middleware.ServerError(c, err, "Failed to load dashboard stats!")
	}

	totalBiodata, err := ctrl.Store.EstimatedBiodataCount(ctx)
	if err != nil {
		return fail(err)
	}
	maleBiodata, err := ctrl.Store.CountBiodatas(ctx, models.BiodataFilter{BiodataType: models.BiodataTypeMale})
	if err != nil {
		return fail(err)
	}
	femaleBiodata, err := ctrl.Store.CountBiodatas(ctx, models.BiodataFilter{BiodataType: models.BiodataTypeFemale})
	if err != nil {
		return fail(err)
	}
	premiumBiodata, err := ctrl.Store.CountBiodatas(ctx, models.BiodataFilter{Status: models.StatusPremium})
	if err != nil {
		return fail(err)
	}

	approved, err := ctrl.Store.ListContactRequests(ctx, models.ContactApproved)
	if err != nil {
		return fail(err)
	}
	requestsToday, err := ctrl.Store.CountContactRequestsSince(ctx, now.BeginningOfDay())
	if err != nil {
		return fail(err)
	}

	return c.JSON(fiber.Map{
		"totalBiodata":         totalBiodata,
		"maleBiodata":          maleBiodata,
		"femaleBiodata":        femaleBiodata,
		"premiumBiodata":       premiumBiodata,
		"totalRevenue":         models.TotalRevenue(approved),
		"contactRequestsToday": requestsToday,
	})
}
