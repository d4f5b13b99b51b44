package successStoryValidator

import (
	"strconv"
	"strings"

	"marrynow/middleware"
	"marrynow/models"
	"marrynow/validators"

	"github.com/gofiber/fiber/v2"
)

type SuccessStoryRequest struct {
	SelfBiodataID    models.NumericID `json:"selfBiodataId" validate:"gt=0"`
	PartnerBiodataID models.NumericID `json:"partnerBiodataId" validate:"gt=0"`
	CoupleImage      string           `json:"coupleImage" validate:"omitempty,url"`
	MarriageDate     string           `json:"marriageDate" validate:"required"`
	ReviewStar       float64          `json:"reviewStar" validate:"gte=0,lte=5"`
	Review           string           `json:"review" validate:"max=2000"`
}

// Model stores both biodata references as decimal strings.
func (r *SuccessStoryRequest) Model() *models.SuccessStory {
	return &models.SuccessStory{
		SelfBiodataID:    strconv.Itoa(r.SelfBiodataID.Int()),
		PartnerBiodataID: strconv.Itoa(r.PartnerBiodataID.Int()),
		CoupleImage:      r.CoupleImage,
		MarriageDate:     r.MarriageDate,
		ReviewStar:       r.ReviewStar,
		Review:           r.Review,
	}
}

// CreateSuccessStory validator middleware
func CreateSuccessStory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SuccessStoryRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.MarriageDate = strings.TrimSpace(reqData.MarriageDate)
		reqData.Review = strings.TrimSpace(reqData.Review)

		errors := validators.Struct(reqData)
		if reqData.SelfBiodataID != 0 && reqData.SelfBiodataID == reqData.PartnerBiodataID {
			errors = validators.Merge(errors, map[string]string{
				"partnerBiodataId": "partnerBiodataId must differ from selfBiodataId!",
			})
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSuccessStory", reqData)
		return c.Next()
	}
}
