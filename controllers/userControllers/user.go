package userController

import (
	"strings"
	"time"

	"marrynow/database"
	"marrynow/middleware"
	"marrynow/models"
	userValidator "marrynow/validators/userValidator"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type Controller struct {
	Store database.Store
}

func New(store database.Store) *Controller {
	return &Controller{Store: store}
}

// CreateUser saves a user on first sign in and refreshes last_log_in on
// every later one.
func (ctrl *Controller) CreateUser(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUser").(*userValidator.CreateUserRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	ctx := c.UserContext()
	now := time.Now().UTC()

	existing, err := ctrl.Store.FindUserByEmail(ctx, reqData.Email)
	if err != nil {
		return middleware.ServerError(c, err, "Failed to save user!")
	}
	if existing != nil {
		result, err := ctrl.Store.TouchUserLogin(ctx, reqData.Email, now)
		if err != nil {
			return middleware.ServerError(c, err, "Failed to update last login!")
		}
		return c.JSON(fiber.Map{
			"message":  "user already exists",
			"inserted": false,
			"result":   result,
		})
	}

	user := &models.User{
		Email:     reqData.Email,
		Name:      reqData.Name,
		PhotoURL:  reqData.PhotoURL,
		Role:      models.RoleUser,
		CreatedAt: now,
		LastLogIn: now,
	}
	result, err := ctrl.Store.InsertUser(ctx, user)
	if err != nil {
		return middleware.ServerError(c, err, "Failed to save user!")
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (ctrl *Controller) GetRole(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.Params("email"))
	if email == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Email is required!", nil)
	}

	user, err := ctrl.Store.FindUserByEmail(c.UserContext(), email)
	if err != nil {
		return middleware.ServerError(c, err, "Failed to get role!")
	}
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}
	return c.JSON(fiber.Map{"role": user.RoleOrDefault()})
}

func (ctrl *Controller) MakeAdmin(c *fiber.Ctx) error {
	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	result, err := ctrl.Store.MakeAdmin(c.UserContext(), id)
	if err != nil {
		return middleware.ServerError(c, err, "Failed to update role!")
	}
	if result.MatchedCount == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}
	return c.JSON(result)
}

// RemoveFavorite pulls a biodata from the user's favorites. Removing an id
// that is not there is a no-op.
func (ctrl *Controller) RemoveFavorite(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRemoveFavorite").(*userValidator.RemoveFavoriteRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result, err := ctrl.Store.RemoveFavorite(c.UserContext(), reqData.Email, reqData.BiodataID.Int())
	if err != nil {
		return middleware.ServerError(c, err, "Failed to remove favorite!")
	}
	if result.MatchedCount == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}
	return c.JSON(result)
}

// UsersWithBiodataStatus lists users, optionally filtered by a
// case-insensitive name search, with the status of the biodata each owns.
func (ctrl *Controller) UsersWithBiodataStatus(c *fiber.Ctx) error {
	ctx := c.UserContext()

	users, err := ctrl.Store.ListUsers(ctx, strings.TrimSpace(c.Query("search")))
	if err != nil {
		return middleware.ServerError(c, err, "Failed to fetch users!")
	}
	biodatas, err := ctrl.Store.ListBiodatas(ctx, models.BiodataFilter{})
	if err != nil {
		return middleware.ServerError(c, err, "Failed to fetch users!")
	}

	statusByEmail := make(map[string]string, len(biodatas))
	for _, b := range biodatas {
		statusByEmail[b.Email] = string(b.Status())
	}

	rows := make([]models.UserWithBiodataStatus, 0, len(users))
	for _, u := range users {
		status, ok := statusByEmail[u.Email]
		if !ok {
			status = models.NoBiodata
		}
		rows = append(rows, models.UserWithBiodataStatus{User: u, BioDataStatus: status})
	}
	return c.JSON(rows)
}
