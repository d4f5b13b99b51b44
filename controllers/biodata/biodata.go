package biodataController

import (
	"strconv"
	"strings"

	"marrynow/database"
	"marrynow/middleware"
	"marrynow/models"
	"marrynow/utils"
	biodataValidator "marrynow/validators/biodata"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const (
	premiumMembersLimit = 6
	similarLimit        = 3
)

type Controller struct {
	Store    database.Store
	Notifier utils.Notifier
}

func New(store database.Store, notifier utils.Notifier) *Controller {
	return &Controller{Store: store, Notifier: notifier}
}

// ListBiodatas returns the public card of every biodata.
func (ctrl *Controller) ListBiodatas(c *fiber.Ctx) error {
	cards, err := ctrl.Store.ListBiodataCards(c.UserContext())
	if err != nil {
		return middleware.ServerError(c, err, "Failed to fetch biodatas!")
	}
	return c.JSON(cards)
}

// CreateBiodata allocates the next biodataId and stores the profile as
// not_premium. An insert that fails after allocation leaves a gap in the
// numbering.
func (ctrl *Controller) CreateBiodata(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedBiodata").(*biodataValidator.BiodataRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	ctx := c.UserContext()

	biodataID, err := ctrl.Store.NextBiodataID(ctx)
	if err != nil {
		return middleware.ServerError(c, err, "Something went wrong.")
	}

	biodata := reqData.Model()
	biodata.BiodataID = biodataID
	biodata.BioDataStatus = models.StatusNotPremium

	result, err := ctrl.Store.InsertBiodata(ctx, biodata)
	if err != nil {
		log.Warn().Int("biodataId", biodataID).Msg("biodataId allocated but not used")
		return middleware.ServerError(c, err, "Something went wrong.")
	}
	utils.BiodatasCreated.Inc()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":    true,
		"insertedId": result.InsertedID,
		"biodataId":  biodataID,
		"message":    "Biodata created successfully!",
	})
}

func (ctrl *Controller) GetBiodataByEmail(c *fiber.Ctx) error {
	biodata, err := ctrl.Store.FindBiodataByEmail(c.UserContext(), c.Params("email"))
	if err != nil {
		return middleware.ServerError(c, err, "Failed to fetch biodata!")
	}
	if biodata == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Biodata not found!", nil)
	}
	return c.JSON(biodata)
}

func (ctrl *Controller) GetBiodataByID(c *fiber.Ctx) error {
	biodataID, err := models.ParseBiodataID(c.Params("biodataId"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid biodataId!", nil)
	}

	biodata, err := ctrl.Store.FindBiodataByID(c.UserContext(), biodataID)
	if err != nil {
		return middleware.ServerError(c, err, "Failed to fetch biodata!")
	}
	if biodata == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Biodata not found!", nil)
	}
	return c.JSON(biodata)
}

// UpdateBiodataByEmail merges the owner's changes into their biodata.
// Only the fields present in the body are written.
func (ctrl *Controller) UpdateBiodataByEmail(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedBiodata").(*biodataValidator.BiodataRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result, err := ctrl.Store.UpdateBiodataByEmail(c.UserContext(), c.Params("email"), reqData.Model())
	if err != nil {
		return middleware.ServerError(c, err, "Failed to update biodata!")
	}
	if result.MatchedCount == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Biodata not found!", nil)
	}
	return c.JSON(result)
}

// PremiumMembers lists up to six premium profiles ordered by age,
// ascending unless sort=desc.
func (ctrl *Controller) PremiumMembers(c *fiber.Ctx) error {
	ascending := !strings.EqualFold(c.Query("sort"), "desc")

	biodatas, err := ctrl.Store.ListPremiumMembers(c.UserContext(), ascending, premiumMembersLimit)
	if err != nil {
		return middleware.ServerError(c, err, "Internal server error!")
	}
	return c.JSON(biodatas)
}

// Similar lists up to three other biodatas of the same type.
func (ctrl *Controller) Similar(c *fiber.Ctx) error {
	excludeID := 0
	if raw := strings.TrimSpace(c.Query("excludeId")); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid excludeId!", nil)
		}
		excludeID = id
	}

	biodatas, err := ctrl.Store.ListSimilarBiodatas(c.UserContext(), c.Params("biodataType"), excludeID, similarLimit)
	if err != nil {
		return middleware.ServerError(c, err, "Failed to fetch similar biodatas!")
	}
	return c.JSON(biodatas)
}

func (ctrl *Controller) Stats(c *fiber.Ctx) error {
	ctx := c.UserContext()

	totalBiodata, err := ctrl.Store.EstimatedBiodataCount(ctx)
	if err != nil {
		return middleware.ServerError(c, err, "Something went wrong!")
	}
	totalBoys, err := ctrl.Store.CountBiodatas(ctx, models.BiodataFilter{BiodataType: models.BiodataTypeMale})
	if err != nil {
		return middleware.ServerError(c, err, "Something went wrong!")
	}
	totalGirls, err := ctrl.Store.CountBiodatas(ctx, models.BiodataFilter{BiodataType: models.BiodataTypeFemale})
	if err != nil {
		return middleware.ServerError(c, err, "Something went wrong!")
	}
	// every success story is one completed marriage
	totalMarried, err := ctrl.Store.EstimatedSuccessStoryCount(ctx)
	if err != nil {
		return middleware.ServerError(c, err, "Something went wrong!")
	}

	return c.JSON(fiber.Map{
		"totalBiodata": totalBiodata,
		"totalBoys":    totalBoys,
		"totalGirls":   totalGirls,
		"totalMarried": totalMarried,
	})
}
