package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	gerrors "github.com/go-faster/errors"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/configuration"
)

// Client talks to a Razorpay-compatible orders API with basic auth.
type Client struct {
	httpClient *http.Client
	opts       configuration.PaymentsOptions
}

func NewClient(opts configuration.PaymentsOptions) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		opts:       opts,
	}
}

type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

func (c *Client) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*GatewayOrder, error) {
	body, err := json.Marshal(createOrderRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.opts.KeyID, c.opts.KeySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to create gateway order")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("gateway order creation returned status %d", resp.StatusCode)
	}

	var order GatewayOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, gerrors.Wrap(err, "failed to decode gateway order")
	}
	return &order, nil
}

// VerifySignature binds the checkout callback to this client's secret.
func (c *Client) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	return VerifyPaymentSignature(c.opts.KeySecret, gatewayOrderID, paymentID, signature)
}

// VerifyWebhook binds a webhook body to this client's webhook secret.
func (c *Client) VerifyWebhook(rawBody []byte, signature string) bool {
	return VerifyWebhookSignature(c.opts.WebhookSecret, rawBody, signature)
}
