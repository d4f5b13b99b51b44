package contactRequestController

import (
	"context"
	"strings"
	"time"

	"marrynow/database"
	"marrynow/middleware"
	"marrynow/models"
	"marrynow/utils"
	contactRequestValidator "marrynow/validators/contactRequest"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type Controller struct {
	Store    database.Store
	Gateway  utils.PaymentGateway
	Notifier utils.Notifier
	Currency string
}

func New(store database.Store, gateway utils.PaymentGateway, notifier utils.Notifier, currency string) *Controller {
	return &Controller{Store: store, Gateway: gateway, Notifier: notifier, Currency: currency}
}

// RequestContact charges the requester and, only when the charge
// succeeded, records a pending contact request. Charges are not retried.
func (ctrl *Controller) RequestContact(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedContactRequest").(*contactRequestValidator.RequestContactRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	ctx := c.UserContext()

	charge, err := ctrl.Gateway.Charge(ctx, reqData.Amount.Float64(), ctrl.Currency, reqData.PaymentMethodID)
	if err != nil {
		utils.PaymentsTotal.WithLabelValues("error").Inc()
		return middleware.ServerError(c, err, "Payment processing failed!")
	}
	if !charge.Succeeded() {
		utils.PaymentsTotal.WithLabelValues("declined").Inc()
		log.Info().
			Int("biodataId", reqData.BiodataID.Int()).
			Str("userEmail", reqData.UserEmail).
			Str("status", charge.Status).
			Msg("contact request payment not completed")
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment failed!", nil)
	}
	utils.PaymentsTotal.WithLabelValues("succeeded").Inc()

	request := &models.ContactRequest{
		BiodataID:     reqData.BiodataID,
		UserEmail:     reqData.UserEmail,
		UserName:      reqData.UserName,
		Amount:        reqData.Amount,
		Status:        models.ContactPending,
		RequestAt:     time.Now().UTC(),
		PaymentMethod: charge.PaymentMethodTypes,
		TransactionID: charge.TransactionID,
	}
	result, err := ctrl.Store.InsertContactRequest(ctx, request)
	if err != nil {
		// the card was charged; keep the transaction id for reconciliation
		log.Error().Str("transactionId", charge.TransactionID).Msg("charged contact request not recorded")
		return middleware.ServerError(c, err, "Failed to record contact request!")
	}

	return c.JSON(fiber.Map{
		"result":        result,
		"transactionId": charge.TransactionID,
	})
}

// PendingRequests is the admin approval queue.
func (ctrl *Controller) PendingRequests(c *fiber.Ctx) error {
	requests, err := ctrl.Store.ListContactRequests(c.UserContext(), models.ContactPending)
	if err != nil {
		return middleware.ServerError(c, err, "Failed to fetch contact requests!")
	}
	return c.JSON(requests)
}

// Approve marks a request approved and stamps approvedAt. Approving twice
// is harmless; the requester is only notified on the first approval.
func (ctrl *Controller) Approve(c *fiber.Ctx) error {
	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request id!", nil)
	}
	ctx := c.UserContext()

	request, err := ctrl.Store.FindContactRequest(ctx, id)
	if err != nil {
		return middleware.ServerError(c, err, "Failed to approve contact request!")
	}
	if request == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Contact request not found!", nil)
	}

	result, err := ctrl.Store.ApproveContactRequest(ctx, id, time.Now().UTC())
	if err != nil {
		return middleware.ServerError(c, err, "Failed to approve contact request!")
	}
	if result.MatchedCount == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Contact request not found!", nil)
	}

	if request.Status != models.ContactApproved {
		utils.ContactRequestsApproved.Inc()
		ctrl.notifyApproved(ctx, *request)
	}
	return c.JSON(result)
}

func (ctrl *Controller) notifyApproved(ctx context.Context, request models.ContactRequest) {
	biodata, err := ctrl.Store.FindBiodataByID(ctx, request.BiodataID.Int())
	if err != nil {
		log.Warn().Err(err).Int("biodataId", request.BiodataID.Int()).Msg("approval notice sent without biodata")
	}
	ctrl.Notifier.ContactApproved(request, biodata)
}

// Delete removes every request the user made for the biodata.
func (ctrl *Controller) Delete(c *fiber.Ctx) error {
	biodataID, err := models.ParseBiodataID(c.Params("biodataId"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid biodataId!", nil)
	}
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Email is required!", nil)
	}

	result, err := ctrl.Store.DeleteContactRequests(c.UserContext(), biodataID, email)
	if err != nil {
		return middleware.ServerError(c, err, "Failed to delete contact request!")
	}
	return c.JSON(result)
}

// UserRequests lists a user's requests with the contact details of each
// requested profile, redacted until approval.
func (ctrl *Controller) UserRequests(c *fiber.Ctx) error {
	rows, err := ctrl.Store.ListContactRequestsWithBiodata(c.UserContext(), c.Params("userEmail"))
	if err != nil {
		return middleware.ServerError(c, err, "Failed to fetch contact requests!")
	}

	views := make([]models.ContactView, 0, len(rows))
	for _, row := range rows {
		views = append(views, row.ContactRequest.View(row.Biodata))
	}
	return c.JSON(views)
}
