package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/noah-isme/studykart/internal/catalog"
	"github.com/noah-isme/studykart/internal/common"
	"github.com/noah-isme/studykart/internal/obs"
)

// Currency is the only currency this funnel sells in.
const Currency = "INR"

// Selection is the wizard state carried on both endpoints. It rides along as
// provider notes on order creation and drives link resolution on verification;
// it is never used for access control before the signature check passes.
type Selection struct {
	PhoneNumber     string
	SelectedClass   string
	SelectedSubject string
	IsBundleMode    bool
	BundleType      string
}

// Confirmation is the provider-issued triple produced by the client checkout flow.
type Confirmation struct {
	OrderID   string
	PaymentID string
	Signature string
}

// Service creates provider orders and verifies payment confirmations. It is
// stateless: every call is an independent, request-scoped computation.
type Service struct {
	Provider  Provider
	Catalog   *catalog.Catalog
	KeySecret string
	Logger    zerolog.Logger
}

// CreateOrder converts the amount to minor units, derives a receipt token and
// delegates to the provider. The selection travels as opaque notes.
func (s *Service) CreateOrder(ctx context.Context, amount int64, sel Selection) (OrderResult, error) {
	if s == nil || s.Provider == nil {
		return OrderResult{}, common.NewAppError("CONFIG_MISSING",
			"Payment gateway not configured. Please check environment variables.",
			http.StatusInternalServerError, nil)
	}
	if amount <= 0 {
		return OrderResult{}, common.NewAppError("BAD_REQUEST",
			"amount must be a positive number", http.StatusBadRequest, nil)
	}

	ctx, span := otel.Tracer("payment.Service").Start(ctx, "PaymentService.CreateOrder")
	defer span.End()

	result := "error"
	start := time.Now()
	defer func() {
		span.SetAttributes(
			attribute.String("order.result", result),
			attribute.Float64("order.duration_ms", obs.DurationMillis(time.Since(start))),
		)
		if obs.OrderCreateTotal != nil {
			obs.OrderCreateTotal.WithLabelValues(result).Inc()
		}
	}()

	req := OrderRequest{
		Amount:   amount * 100,
		Currency: Currency,
		Receipt:  newReceipt(),
		Notes:    sel.notes(),
	}
	span.SetAttributes(attribute.Int64("order.amount_minor", req.Amount))

	order, err := s.Provider.CreateOrder(ctx, req)
	if err != nil {
		span.RecordError(err)
		s.Logger.Error().Err(err).Str("receipt", req.Receipt).Msg("create order failed")
		return OrderResult{}, common.NewAppError("ORDER_CREATE_FAILED",
			"Failed to create order", http.StatusBadGateway, err)
	}
	if strings.TrimSpace(order.ID) == "" {
		return OrderResult{}, common.NewAppError("ORDER_CREATE_FAILED",
			"Failed to create order", http.StatusBadGateway, errors.New("provider returned no order id"))
	}

	result = "success"
	s.Logger.Info().Str("order_id", order.ID).Int64("amount", order.Amount).Msg("order created")
	return order, nil
}

// Verify checks the confirmation signature and, when authentic, resolves the
// selection to its drive links. Pure apart from the HMAC computation: the same
// valid confirmation always yields the same link set.
func (s *Service) Verify(ctx context.Context, conf Confirmation, sel Selection) (map[string]string, error) {
	if s == nil || s.Catalog == nil || strings.TrimSpace(s.KeySecret) == "" {
		return nil, common.NewAppError("CONFIG_MISSING",
			"Payment gateway not configured. Please check environment variables.",
			http.StatusInternalServerError, nil)
	}

	_, span := otel.Tracer("payment.Service").Start(ctx, "PaymentService.Verify")
	defer span.End()

	result := "error"
	defer func() {
		span.SetAttributes(attribute.String("verify.result", result))
		if obs.PaymentVerifyTotal != nil {
			obs.PaymentVerifyTotal.WithLabelValues(result).Inc()
		}
	}()

	if !VerifySignature(conf.OrderID, conf.PaymentID, conf.Signature, s.KeySecret) {
		result = "invalid_signature"
		s.Logger.Warn().
			Str("order_id", conf.OrderID).
			Str("payment_id", conf.PaymentID).
			Msg("signature mismatch, possible tampering attempt")
		return nil, common.NewAppError("INVALID_SIGNATURE",
			"Invalid signature", http.StatusBadRequest, nil)
	}

	links, err := s.resolveLinks(sel)
	if err != nil {
		if appErr, ok := common.AsAppError(err); ok {
			result = strings.ToLower(appErr.Code)
		}
		return nil, err
	}
	if len(links) == 0 {
		result = "resolution_failed"
		return nil, common.NewAppError("RESOLUTION_FAILED",
			"Could not generate download links", http.StatusInternalServerError, nil)
	}

	result = "success"
	s.Logger.Info().
		Str("order_id", conf.OrderID).
		Int("links", len(links)).
		Msg("payment verified")
	return links, nil
}

// resolveLinks applies the catalog's lookup axes: bundle identifier first,
// then the class/subject decision table.
func (s *Service) resolveLinks(sel Selection) (map[string]string, error) {
	switch {
	case sel.IsBundleMode && strings.TrimSpace(sel.BundleType) != "":
		bundle, err := s.Catalog.Bundle(sel.BundleType)
		if err != nil {
			if errors.Is(err, catalog.ErrBundleNotFound) {
				return nil, common.NewAppError("UNKNOWN_BUNDLE",
					"Invalid bundle type", http.StatusBadRequest, err)
			}
			return nil, err
		}
		links := make(map[string]string, len(bundle.Links))
		for _, link := range bundle.Links {
			links[link.Label] = link.URL
		}
		return links, nil

	case strings.TrimSpace(sel.SelectedSubject) != "":
		bundle, err := s.Catalog.Resolve(sel.SelectedClass, sel.SelectedSubject)
		if err != nil {
			if errors.Is(err, catalog.ErrNoRoute) {
				// A subject the decision table cannot place is a catalog gap,
				// not a client mistake.
				return nil, common.NewAppError("RESOLUTION_FAILED",
					"Could not generate download links", http.StatusInternalServerError, err)
			}
			return nil, err
		}
		if len(bundle.Links) == 0 {
			return nil, nil
		}
		return map[string]string{sel.SelectedSubject: bundle.Links[0].URL}, nil

	default:
		return nil, common.NewAppError("NO_SELECTION",
			"No subject or bundle specified", http.StatusBadRequest, nil)
	}
}

func (sel Selection) notes() map[string]string {
	subject := strings.TrimSpace(sel.SelectedSubject)
	if subject == "" {
		subject = "bundle"
	}
	bundleType := strings.TrimSpace(sel.BundleType)
	if bundleType == "" {
		bundleType = "none"
	}
	return map[string]string{
		"phoneNumber":     sel.PhoneNumber,
		"selectedClass":   sel.SelectedClass,
		"selectedSubject": subject,
		"isBundleMode":    strconv.FormatBool(sel.IsBundleMode),
		"bundleType":      bundleType,
	}
}

// newReceipt derives a receipt token from the current time. Collision
// avoidance only; the provider does not require uniqueness.
func newReceipt() string {
	return fmt.Sprintf("receipt_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
