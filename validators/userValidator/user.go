package userValidator

import (
	"strings"

	"marrynow/middleware"
	"marrynow/models"
	"marrynow/validators"

	"github.com/gofiber/fiber/v2"
)

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"max=100"`
	PhotoURL string `json:"photoURL" validate:"omitempty,url"`
}

type RemoveFavoriteRequest struct {
	BiodataID models.NumericID `json:"biodataId" validate:"gt=0"`
	Email     string           `json:"email" validate:"required,email"`
}

// CreateUser validator middleware
func CreateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateUserRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.Email = strings.TrimSpace(reqData.Email)
		reqData.Name = strings.TrimSpace(reqData.Name)

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUser", reqData)
		return c.Next()
	}
}

// RemoveFavorite validator middleware
func RemoveFavorite() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RemoveFavoriteRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid biodataId or request body!", nil)
		}

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRemoveFavorite", reqData)
		return c.Next()
	}
}
