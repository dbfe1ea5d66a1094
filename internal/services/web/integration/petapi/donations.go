package petapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInvalidAmount rejects non-positive donation amounts before any request.
var ErrInvalidAmount = errors.New("petapi: donation amount must be positive")

// CreatePaymentIntent asks the payment backend for a client secret.
func (c *Client) CreatePaymentIntent(ctx context.Context, amount decimal.Decimal) (string, error) {
	if !amount.IsPositive() {
		return "", ErrInvalidAmount
	}
	body, err := c.send(ctx, request{
		method:         http.MethodPost,
		path:           "/create-payment-intent",
		body: struct {
			Amount wireAmount `json:"amount"`
		}{Amount: wireAmount(amount)},
		idempotencyKey: uuid.NewString(),
	})
	if err != nil {
		return "", err
	}
	return decodeClientSecret(body)
}

// decodeClientSecret accepts a bare JSON string or {"clientSecret": "..."}.
func decodeClientSecret(body []byte) (string, error) {
	var secret string
	if err := json.Unmarshal(body, &secret); err == nil && secret != "" {
		return secret, nil
	}
	var envelope struct {
		ClientSecret string `json:"clientSecret"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", err
	}
	if strings.TrimSpace(envelope.ClientSecret) == "" {
		return "", errors.New("petapi: payment intent without client secret")
	}
	return envelope.ClientSecret, nil
}

// RecordDonation stores a completed donation.
func (c *Client) RecordDonation(ctx context.Context, donation Donation) (Donation, error) {
	if !donation.Amount.IsPositive() {
		return Donation{}, ErrInvalidAmount
	}
	if donation.CreatedAt.IsZero() {
		donation.CreatedAt = time.Now().UTC()
	}
	donation.ID = ""
	var created createdResponse
	if err := c.do(ctx, request{
		method:         http.MethodPost,
		path:           "/donations",
		body:           donation,
		idempotencyKey: uuid.NewString(),
	}, &created); err != nil {
		return Donation{}, err
	}
	donation.ID = created.id()
	return donation, nil
}

// ListUserDonations loads every donation made by userID.
func (c *Client) ListUserDonations(ctx context.Context, userID string) ([]Donation, error) {
	body, err := c.send(ctx, request{method: http.MethodGet, path: "/donations/user/" + escape(userID)})
	if err != nil {
		return nil, err
	}
	result, err := decodeListing[Donation](body, "donations")
	if err != nil {
		return nil, err
	}
	return result.Items, nil
}
