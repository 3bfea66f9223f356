// Package payment adapts the external payment gateway behind a narrow
// interface. The gateway protocol is opaque to the rest of the system:
// orders are correlated by out_trade_no (the public order id) and the
// only observable outcomes are a redirect URL and a trade query result.
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"freshmart/internal/config"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Trade status values reported by the gateway.
const (
	CodeOK            = "10000"
	TradeStatusPaid   = "TRADE_SUCCESS"
	TradeStatusClosed = "TRADE_CLOSED"
)

// TradeResult is the gateway's answer to a trade query.
type TradeResult struct {
	Code        string `json:"code"`
	TradeStatus string `json:"trade_status"`
	TradeNo     string `json:"trade_no"`
}

// Paid reports whether the gateway confirms a completed payment.
func (r TradeResult) Paid() bool {
	return r.Code == CodeOK && r.TradeStatus == TradeStatusPaid
}

// Gateway is the payment-gateway contract the payment service consumes.
type Gateway interface {
	// Pay registers a trade with the gateway and returns the URL the
	// customer is redirected to for payment.
	Pay(ctx context.Context, outTradeNo string, amount decimal.Decimal, subject string) (string, error)

	// Query asks the gateway for the current status of a trade.
	Query(ctx context.Context, outTradeNo string) (TradeResult, error)
}

// HTTPGateway talks to the gateway over HTTP. Network failures are
// surfaced to the caller; retry policy is a caller concern.
type HTTPGateway struct {
	baseURL   string
	appID     string
	returnURL string
	client    *http.Client
	logger    zerolog.Logger
}

// NewHTTPGateway creates a gateway client from configuration.
func NewHTTPGateway(cfg config.PaymentConfig, logger zerolog.Logger) *HTTPGateway {
	return &HTTPGateway{
		baseURL:   cfg.GatewayURL,
		appID:     cfg.AppID,
		returnURL: cfg.ReturnURL,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSec) * time.Second,
		},
		logger: logger.With().Str("gateway", "payment").Logger(),
	}
}

// Pay registers a trade and returns the redirect URL.
func (g *HTTPGateway) Pay(ctx context.Context, outTradeNo string, amount decimal.Decimal, subject string) (string, error) {
	form := url.Values{
		"method":       {"trade.page.pay"},
		"app_id":       {g.appID},
		"out_trade_no": {outTradeNo},
		"total_amount": {amount.StringFixed(2)},
		"subject":      {subject},
		"return_url":   {g.returnURL},
	}

	var resp struct {
		Code   string `json:"code"`
		PayURL string `json:"pay_url"`
		Msg    string `json:"msg"`
	}
	if err := g.post(ctx, form, &resp); err != nil {
		return "", err
	}

	if resp.Code != CodeOK || resp.PayURL == "" {
		g.logger.Warn().
			Str("out_trade_no", outTradeNo).
			Str("code", resp.Code).
			Str("msg", resp.Msg).
			Msg("gateway rejected trade")
		return "", fmt.Errorf("gateway rejected trade %s: code=%s msg=%s", outTradeNo, resp.Code, resp.Msg)
	}

	g.logger.Info().
		Str("out_trade_no", outTradeNo).
		Str("amount", amount.StringFixed(2)).
		Msg("trade registered with gateway")

	return resp.PayURL, nil
}

// Query asks the gateway for the current status of a trade.
func (g *HTTPGateway) Query(ctx context.Context, outTradeNo string) (TradeResult, error) {
	form := url.Values{
		"method":       {"trade.query"},
		"app_id":       {g.appID},
		"out_trade_no": {outTradeNo},
	}

	var result TradeResult
	if err := g.post(ctx, form, &result); err != nil {
		return TradeResult{}, err
	}

	g.logger.Debug().
		Str("out_trade_no", outTradeNo).
		Str("code", result.Code).
		Str("trade_status", result.TradeStatus).
		Msg("trade queried")

	return result, nil
}

// post sends one form-encoded request and decodes the JSON response.
func (g *HTTPGateway) post(ctx context.Context, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Error().Err(err).Msg("gateway unreachable")
		return fmt.Errorf("gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.logger.Error().Int("status", resp.StatusCode).Msg("gateway returned non-200")
		return fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}
	return nil
}
