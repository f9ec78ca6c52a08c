package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"ticketly/internal/shared/config"
)

var (
	ErrIntentNotFound     = errors.New("payment intent not found")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)

// VerificationResult is the gateway's answer for a single payment intent.
// AmountCaptured is in minor units of Currency.
type VerificationResult struct {
	IntentID       string
	Settled        bool
	AmountCaptured int64
	Currency       string
	ReceiptURL     string
}

// Verifier checks whether an externally initiated payment has settled.
type Verifier interface {
	Verify(ctx context.Context, intentID string) (*VerificationResult, error)
}

// GatewayVerifier talks to the payment gateway's verification endpoint
// with a server-side secret key.
type GatewayVerifier struct {
	baseURL   string
	secretKey string
	client    *http.Client
}

func NewGatewayVerifier(cfg config.GatewayConfig) *GatewayVerifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GatewayVerifier{
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretKey,
		client:    &http.Client{Timeout: timeout},
	}
}

type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Reference  string `json:"reference"`
		Status     string `json:"status"`
		Amount     int64  `json:"amount"`
		Currency   string `json:"currency"`
		ReceiptURL string `json:"receipt_url"`
	} `json:"data"`
}

func (v *GatewayVerifier) Verify(ctx context.Context, intentID string) (*VerificationResult, error) {
	endpoint := fmt.Sprintf("%s/transaction/verify/%s", v.baseURL, url.PathEscape(intentID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build verification request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+v.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrIntentNotFound
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: gateway returned %d", ErrGatewayUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("gateway verification failed with %d: %s", resp.StatusCode, string(body))
	}

	var parsed verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}

	return &VerificationResult{
		IntentID:       parsed.Data.Reference,
		Settled:        parsed.Status && parsed.Data.Status == "success",
		AmountCaptured: parsed.Data.Amount,
		Currency:       parsed.Data.Currency,
		ReceiptURL:     parsed.Data.ReceiptURL,
	}, nil
}
