// Package payment provides an HTTP client adapter for the payment provider.
// Order confirmation only needs an intent id; authorization and capture stay
// on the provider's side.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"parcelgo/internal/core/domain/model/kernel"
)

const defaultTimeout = 10 * time.Second

// Client implements the PaymentGateway port against the provider's REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a payment client for the given provider base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

type createIntentRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type createIntentResponse struct {
	IntentID string `json:"intent_id"`
}

// CreateIntent registers a payment intent for the given amount and returns
// the provider's intent id.
func (c *Client) CreateIntent(ctx context.Context, amount kernel.Money) (string, error) {
	if err := amount.Validate(); err != nil {
		return "", err
	}

	body, err := json.Marshal(createIntentRequest{
		Amount:   amount.Amount(),
		Currency: amount.Currency(),
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/intents", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("payment provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	var intent createIntentResponse
	if err = json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return "", fmt.Errorf("payment provider response is malformed: %w", err)
	}

	if intent.IntentID == "" {
		return "", fmt.Errorf("payment provider returned an empty intent id")
	}

	return intent.IntentID, nil
}
