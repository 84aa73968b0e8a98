package paymentprovider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
)

const (
	checkoutSessionsPath = "/v1/checkout/sessions"
	defaultTimeout       = 10 * time.Second
	maxResponseBytes     = 1 << 20
)

// ErrMissingSecretKey is returned by NewClient when no API key is configured.
var ErrMissingSecretKey = errors.New("payment provider secret key is empty")

// Config holds what the client needs to talk to the provider.
type Config struct {
	BaseURL       string
	SecretKey     string
	WebhookSecret string
	Currency      string
	Timeout       time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithClock replaces time.Now, used for the signature tolerance window.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// Client talks to the provider. It is safe for concurrent use.
type Client struct {
	baseURL       string
	secretKey     string
	webhookSecret string
	currency      string
	timeout       time.Duration
	httpClient    *http.Client
	now           func() time.Time
}

// NewClient creates a Client from cfg.
func NewClient(cfg Config, options ...Option) (*Client, error) {
	if cfg.SecretKey == "" {
		return nil, ErrMissingSecretKey
	}

	c := &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		secretKey:     cfg.SecretKey,
		webhookSecret: cfg.WebhookSecret,
		currency:      strings.ToLower(cfg.Currency),
		timeout:       cfg.Timeout,
		httpClient:    &http.Client{},
		now:           time.Now,
	}

	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}

	if c.currency == "" {
		c.currency = "mxn"
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

// CheckoutSessionRequest describes a single-item payment.
type CheckoutSessionRequest struct {
	Amount             decimal.Decimal
	ProductName        string
	ProductDescription string
	CustomerEmail      string
	SuccessURL         string
	CancelURL          string
	Metadata           map[string]string
}

// CheckoutSession is the part of the provider's session object the library needs.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateCheckoutSession creates a hosted payment page for req. The call is bounded by the configured timeout.
func (c *Client) CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (CheckoutSession, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+checkoutSessionsPath,
		strings.NewReader(c.checkoutSessionForm(req).Encode()),
	)
	if err != nil {
		return CheckoutSession{}, errors.Join(core.ErrPaymentProviderUnavailable, err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return CheckoutSession{}, errors.Join(core.ErrPaymentProviderUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return CheckoutSession{}, errors.Join(core.ErrPaymentProviderUnavailable, err)
	}

	if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
		return CheckoutSession{}, fmt.Errorf("%w: status %d", core.ErrPaymentProviderUnavailable, resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		_ = jsoniter.ConfigFastest.Unmarshal(body, &errResp)

		return CheckoutSession{}, fmt.Errorf("%w: status %d: %s",
			core.ErrPaymentProviderRejected, resp.StatusCode, errResp.Error.Message)
	}

	var session CheckoutSession
	if err = jsoniter.ConfigFastest.Unmarshal(body, &session); err != nil {
		return CheckoutSession{}, errors.Join(core.ErrPaymentProviderRejected, err)
	}

	if session.ID == "" || session.URL == "" {
		return CheckoutSession{}, fmt.Errorf("%w: session without id or url", core.ErrPaymentProviderRejected)
	}

	return session, nil
}

func (c *Client) checkoutSessionForm(req CheckoutSessionRequest) url.Values {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", c.currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(ToMinorUnits(req.Amount), 10))
	form.Set("line_items[0][price_data][product_data][name]", req.ProductName)
	form.Set("success_url", req.SuccessURL)
	form.Set("cancel_url", req.CancelURL)

	if req.ProductDescription != "" {
		form.Set("line_items[0][price_data][product_data][description]", req.ProductDescription)
	}

	if req.CustomerEmail != "" {
		form.Set("customer_email", req.CustomerEmail)
	}

	for key, value := range req.Metadata {
		form.Set("metadata["+key+"]", value)
	}

	return form
}

// ToMinorUnits converts an amount to cents, rounding half away from zero.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}
