package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PaymentSucceeded is the only charge status that counts as paid.
const PaymentSucceeded = "succeeded"

var ErrPaymentNotConfigured = errors.New("payment gateway is not configured")

// ChargeResult is the outcome of a single charge attempt.
type ChargeResult struct {
	Status             string
	TransactionID      string
	PaymentMethodTypes []string
}

func (r ChargeResult) Succeeded() bool { return r.Status == PaymentSucceeded }

// PaymentGateway charges a payment method once. A declined charge is a
// result, not an error; errors mean the outcome is unknown.
type PaymentGateway interface {
	Charge(ctx context.Context, amount float64, currency, paymentMethodID string) (ChargeResult, error)
}

// StripeGateway confirms PaymentIntents against the Stripe REST API.
type StripeGateway struct {
	client    *resty.Client
	secretKey string
}

func NewStripeGateway(baseURL, secretKey string) *StripeGateway {
	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(secretKey).
		SetTimeout(30 * time.Second)
	return &StripeGateway{client: client, secretKey: secretKey}
}

type paymentIntent struct {
	ID                 string   `json:"id"`
	Status             string   `json:"status"`
	PaymentMethodTypes []string `json:"payment_method_types"`
}

type stripeError struct {
	Error struct {
		Code          string         `json:"code"`
		DeclineCode   string         `json:"decline_code"`
		Message       string         `json:"message"`
		PaymentIntent *paymentIntent `json:"payment_intent"`
	} `json:"error"`
}

// MinorUnits converts a major-unit amount to the gateway's integer minor units.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func (g *StripeGateway) Charge(ctx context.Context, amount float64, currency, paymentMethodID string) (ChargeResult, error) {
	if g.secretKey == "" {
		return ChargeResult{}, ErrPaymentNotConfigured
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Idempotency-Key", uuid.NewString()).
		SetFormData(map[string]string{
			"amount":                 strconv.FormatInt(MinorUnits(amount), 10),
			"currency":               currency,
			"payment_method_types[]": "card",
			"payment_method":         paymentMethodID,
			"confirm":                "true",
		}).
		Post("payment_intents")
	if err != nil {
		return ChargeResult{}, fmt.Errorf("stripe request: %w", err)
	}

	switch {
	case resp.IsSuccess():
		var intent paymentIntent
		if err := json.Unmarshal(resp.Body(), &intent); err != nil {
			return ChargeResult{}, fmt.Errorf("decode payment intent: %w", err)
		}
		return ChargeResult{
			Status:             intent.Status,
			TransactionID:      intent.ID,
			PaymentMethodTypes: intent.PaymentMethodTypes,
		}, nil

	case resp.StatusCode() == http.StatusPaymentRequired:
		var body stripeError
		_ = json.Unmarshal(resp.Body(), &body)
		log.Info().
			Str("code", body.Error.Code).
			Str("decline_code", body.Error.DeclineCode).
			Msg("card declined")
		result := ChargeResult{Status: "declined"}
		if pi := body.Error.PaymentIntent; pi != nil && pi.Status != "" {
			result.Status = pi.Status
		}
		return result, nil

	default:
		return ChargeResult{}, fmt.Errorf("stripe returned %d: %s", resp.StatusCode(), resp.String())
	}
}
