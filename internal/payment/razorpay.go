package payment

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
)

// Razorpay implements the Provider interface against the Razorpay Orders API.
type Razorpay struct {
	KeyID     string
	KeySecret string
	BaseURL   string
	Client    *http.Client
}

type razorpayOrderBody struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type razorpayOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Error    struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder performs one authenticated POST to /v1/orders and returns the
// provider-issued order verbatim.
func (p Razorpay) CreateOrder(ctx context.Context, req OrderRequest) (OrderResult, error) {
	if strings.TrimSpace(p.KeyID) == "" || strings.TrimSpace(p.KeySecret) == "" {
		return OrderResult{}, errors.New("razorpay credentials missing")
	}
	if req.Amount <= 0 {
		return OrderResult{}, errors.New("amount must be positive")
	}

	body, err := json.Marshal(razorpayOrderBody{
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Notes:    req.Notes,
	})
	if err != nil {
		return OrderResult{}, fmt.Errorf("encode order: %w", err)
	}

	url := strings.TrimRight(p.apiHost(), "/") + "/v1/orders"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return OrderResult{}, fmt.Errorf("build order request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(p.KeyID, p.KeySecret)

	resp, err := p.client().Do(httpReq)
	if err != nil {
		return OrderResult{}, fmt.Errorf("razorpay order call: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return OrderResult{}, fmt.Errorf("read order response: %w", err)
	}

	var parsed razorpayOrderResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return OrderResult{}, fmt.Errorf("decode order response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		desc := strings.TrimSpace(parsed.Error.Description)
		if desc == "" {
			desc = http.StatusText(resp.StatusCode)
		}
		return OrderResult{}, fmt.Errorf("razorpay order rejected: %s", desc)
	}
	if strings.TrimSpace(parsed.ID) == "" {
		return OrderResult{}, errors.New("razorpay returned no order id")
	}

	return OrderResult{ID: parsed.ID, Amount: parsed.Amount, Currency: parsed.Currency}, nil
}

func (p Razorpay) apiHost() string {
	host := strings.TrimSpace(p.BaseURL)
	if host == "" {
		return "https://api.razorpay.com"
	}
	return host
}

func (p Razorpay) client() *http.Client {
	if p.Client != nil {
		return p.Client
	}
	return &http.Client{Timeout: 15 * time.Second}
}
