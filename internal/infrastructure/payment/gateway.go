package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Config carries the merchant credentials for the payment gateway. Loaded
// once at startup; the gateway itself is read-only after construction.
type Config struct {
	BaseURL    string
	MerchantID string
	PublicKey  string
	PrivateKey string
}

// Transaction is the gateway's settlement result, stored verbatim on the
// order as a payment snapshot.
type Transaction struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	AmountCents int64     `json:"amount_cents"`
	CreatedAt   time.Time `json:"created_at"`
}

// Gateway is a thin JSON client for the third-party payment API. Every call
// is single-attempt; settlement failures surface as errors, never as silent
// success.
type Gateway struct {
	cfg        Config
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewGateway(cfg Config, logger *logrus.Logger) *Gateway {
	return &Gateway{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

type apiError struct {
	Message string `json:"message"`
}

func (g *Gateway) post(ctx context.Context, endpoint string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	url := g.cfg.BaseURL + "/merchants/" + g.cfg.MerchantID + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.cfg.PublicKey, g.cfg.PrivateKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("gateway response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("gateway declined: %s", apiErr.Message)
		}
		if g.logger != nil {
			g.logger.WithFields(logrus.Fields{"status": resp.StatusCode, "endpoint": endpoint}).Warn("payment gateway error")
		}
		return fmt.Errorf("gateway error: status %d", resp.StatusCode)
	}

	return json.Unmarshal(raw, out)
}

// ClientToken fetches a short-lived token the storefront uses to tokenize
// card details client-side.
func (g *Gateway) ClientToken(ctx context.Context) (string, error) {
	var out struct {
		ClientToken string `json:"client_token"`
	}
	if err := g.post(ctx, "/client_token", struct{}{}, &out); err != nil {
		return "", err
	}
	return out.ClientToken, nil
}

// Sale submits a payment-method nonce for settlement of the given amount.
func (g *Gateway) Sale(ctx context.Context, amountCents int64, nonce string) (*Transaction, error) {
	payload := map[string]any{
		"amount_cents":         amountCents,
		"payment_method_nonce": nonce,
		"options": map[string]any{
			"submit_for_settlement": true,
		},
	}
	var out struct {
		Transaction Transaction `json:"transaction"`
	}
	if err := g.post(ctx, "/transactions", payload, &out); err != nil {
		return nil, err
	}
	return &out.Transaction, nil
}
