package contactRequestValidator

import (
	"strings"

	"marrynow/middleware"
	"marrynow/models"
	"marrynow/validators"

	"github.com/gofiber/fiber/v2"
)

type RequestContactRequest struct {
	BiodataID       models.NumericID `json:"biodataId" validate:"gt=0"`
	UserEmail       string           `json:"userEmail" validate:"required,email"`
	UserName        string           `json:"userName" validate:"max=100"`
	PaymentMethodID string           `json:"paymentMethodId" validate:"required"`
	Amount          models.Amount    `json:"amount" validate:"gt=0"`
}

// RequestContact validator middleware
func RequestContact() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RequestContactRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid biodataId or request body!", nil)
		}
		reqData.UserEmail = strings.TrimSpace(reqData.UserEmail)
		reqData.PaymentMethodID = strings.TrimSpace(reqData.PaymentMethodID)

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedContactRequest", reqData)
		return c.Next()
	}
}
