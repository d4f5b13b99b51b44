package biodataValidator

import (
	"strings"

	"marrynow/middleware"
	"marrynow/models"
	"marrynow/validators"

	"github.com/gofiber/fiber/v2"
)

// BiodataRequest carries the owner-editable biodata fields. Identity and
// workflow fields (_id, biodataId, bioDataStatus) are not accepted.
type BiodataRequest struct {
	Email                 string           `json:"email" validate:"omitempty,email"`
	BiodataType           string           `json:"biodataType" validate:"omitempty,oneof=Male Female"`
	Name                  string           `json:"name" validate:"max=100"`
	Image                 string           `json:"image" validate:"omitempty,url"`
	DateOfBirth           string           `json:"dateOfBirth"`
	Height                string           `json:"height"`
	Weight                string           `json:"weight"`
	Age                   models.NumericID `json:"age" validate:"omitempty,gte=18,lte=100"`
	Occupation            string           `json:"occupation"`
	Race                  string           `json:"race"`
	FathersName           string           `json:"fathersName"`
	MothersName           string           `json:"mothersName"`
	PermanentDivision     string           `json:"permanentDivision"`
	PresentDivision       string           `json:"presentDivision"`
	ExpectedPartnerAge    string           `json:"expectedPartnerAge"`
	ExpectedPartnerHeight string           `json:"expectedPartnerHeight"`
	ExpectedPartnerWeight string           `json:"expectedPartnerWeight"`
	Mobile                string           `json:"mobile" validate:"omitempty,max=20"`
}

// Model converts the request into a biodata document without identity or
// status.
func (r *BiodataRequest) Model() *models.Biodata {
	return &models.Biodata{
		Email:                 r.Email,
		BiodataType:           r.BiodataType,
		Name:                  r.Name,
		Image:                 r.Image,
		DateOfBirth:           r.DateOfBirth,
		Height:                r.Height,
		Weight:                r.Weight,
		Age:                   r.Age.Int(),
		Occupation:            r.Occupation,
		Race:                  r.Race,
		FathersName:           r.FathersName,
		MothersName:           r.MothersName,
		PermanentDivision:     r.PermanentDivision,
		PresentDivision:       r.PresentDivision,
		ExpectedPartnerAge:    r.ExpectedPartnerAge,
		ExpectedPartnerHeight: r.ExpectedPartnerHeight,
		ExpectedPartnerWeight: r.ExpectedPartnerWeight,
		Mobile:                r.Mobile,
	}
}

func (r *BiodataRequest) trim() {
	r.Email = strings.TrimSpace(r.Email)
	r.Name = strings.TrimSpace(r.Name)
	r.Mobile = strings.TrimSpace(r.Mobile)
}

type AddFavoriteRequest struct {
	BiodataID models.NumericID `json:"biodataId" validate:"gt=0"`
	UserEmail string           `json:"userEmail" validate:"required,email"`
}

// CreateBiodata validator middleware
func CreateBiodata() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(BiodataRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.trim()

		errors := validators.Struct(reqData)

		// Required on create only; PATCH accepts any subset.
		required := make(map[string]string)
		if reqData.Email == "" {
			required["email"] = "email is required!"
		}
		if reqData.BiodataType == "" {
			required["biodataType"] = "biodataType is required!"
		}
		if reqData.Name == "" {
			required["name"] = "name is required!"
		}
		errors = validators.Merge(errors, required)

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBiodata", reqData)
		return c.Next()
	}
}

// UpdateBiodata validator middleware
func UpdateBiodata() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(BiodataRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.trim()

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}
		if *reqData == (BiodataRequest{}) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No fields to update!", nil)
		}

		c.Locals("validatedBiodata", reqData)
		return c.Next()
	}
}

// AddFavorite validator middleware
func AddFavorite() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AddFavoriteRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid biodataId or request body!", nil)
		}

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedFavorite", reqData)
		return c.Next()
	}
}
