package payment

import "context"

// OrderRequest captures the information required to open an order with the
// payment provider. Amount is in minor currency units (paise).
type OrderRequest struct {
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]string
}

// OrderResult represents the minimal information returned by a provider when
// creating an order. Echoed verbatim to the client.
type OrderResult struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Provider abstracts the order-creation operation of the upstream payment
// gateway. Signature verification is local and does not go through here.
type Provider interface {
	CreateOrder(ctx context.Context, req OrderRequest) (OrderResult, error)
}
