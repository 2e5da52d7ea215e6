package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopkartio/shopkart-backend/pkg/config"
	"github.com/shopkartio/shopkart-backend/pkg/enums"
	"github.com/shopkartio/shopkart-backend/pkg/logger"
)

const (
	testEnv = "test"
	liveEnv = "live"

	defaultCurrency = "INR"
)

// ChargeStatus is the terminal state the gateway reports for a charge.
type ChargeStatus string

const (
	ChargeSucceeded ChargeStatus = "succeeded"
	ChargeFailed    ChargeStatus = "failed"
	ChargeCanceled  ChargeStatus = "canceled"
)

var (
	errAPIKeyRequired  = errors.New("gateway api key is required")
	errBaseURLRequired = errors.New("gateway base url is required")
	errInvalidEnv      = fmt.Errorf("gateway environment must be %q or %q", testEnv, liveEnv)
)

// ChargeRequest describes a single online payment to capture upfront.
type ChargeRequest struct {
	CheckoutID string              `json:"checkout_id"`
	Amount     decimal.Decimal     `json:"amount"`
	Currency   string              `json:"currency"`
	Method     enums.PaymentMethod `json:"method"`
	BuyerEmail string              `json:"buyer_email"`
}

// ChargeResult is the gateway's verdict on a charge attempt.
type ChargeResult struct {
	Status    ChargeStatus `json:"status"`
	Reference string       `json:"reference"`
}

// Charger is the payment surface checkout depends on. Void releases a
// captured charge when the work it paid for could not be committed.
type Charger interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
	Void(ctx context.Context, reference string) error
}

// Client talks to the payment gateway's REST API.
type Client struct {
	baseURL     string
	apiKey      string
	environment string
	httpClient  *http.Client
}

// NewClient validates the gateway config and returns a ready client.
func NewClient(ctx context.Context, cfg config.GatewayConfig, logg *logger.Logger) (*Client, error) {
	env, err := normalizeEnv(cfg.Environment())
	if err != nil {
		return nil, err
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errBaseURLRequired
	}

	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	if logg != nil {
		logg.Info(ctx, fmt.Sprintf("payment gateway client initialized (%s)", env))
	}

	return &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		environment: env,
		httpClient:  &http.Client{Timeout: timeout},
	}, nil
}

// Environment reports the normalized gateway environment in use.
func (c *Client) Environment() string {
	if c == nil {
		return ""
	}
	return c.environment
}

// Charge captures an online payment and returns its terminal status. A
// non-2xx response or transport failure is an error, not a failed charge.
func (c *Client) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if !req.Method.IsOnline() {
		return nil, fmt.Errorf("method %q is not an online payment", req.Method)
	}
	if req.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("charge amount must be positive")
	}
	if req.Currency == "" {
		req.Currency = defaultCurrency
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding charge request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/charges", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building charge request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Idempotency-Key", req.CheckoutID)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling gateway: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading gateway response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var result ChargeResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("decoding gateway response: %w", err)
	}
	switch result.Status {
	case ChargeSucceeded, ChargeFailed, ChargeCanceled:
	default:
		return nil, fmt.Errorf("gateway returned unknown charge status %q", result.Status)
	}
	return &result, nil
}

// Void cancels a previously captured charge by reference.
func (c *Client) Void(ctx context.Context, reference string) error {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return fmt.Errorf("charge reference is required")
	}

	url := fmt.Sprintf("%s/v1/charges/%s/void", c.baseURL, reference)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("building void request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Idempotency-Key", reference)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("calling gateway: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("reading gateway response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}
	return nil
}

func normalizeEnv(raw string) (string, error) {
	env := strings.TrimSpace(strings.ToLower(raw))
	if env == "" {
		env = testEnv
	}
	switch env {
	case testEnv, liveEnv:
		return env, nil
	default:
		return "", errInvalidEnv
	}
}
