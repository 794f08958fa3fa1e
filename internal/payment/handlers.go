package payment

import (
	"encoding/json"
	"net/http"

	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/studykart/internal/common"
)

// Handler exposes the two checkout endpoints consumed by the wizard.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

type createOrderReq struct {
	Amount          int64  `json:"amount" validate:"required,gt=0"`
	PhoneNumber     string `json:"phoneNumber" validate:"required"`
	SelectedClass   string `json:"selectedClass" validate:"required"`
	SelectedSubject string `json:"selectedSubject"`
	IsBundleMode    bool   `json:"isBundleMode"`
	BundleType      string `json:"bundleType"`
}

type verifyReq struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
	PhoneNumber       string `json:"phoneNumber"`
	SelectedClass     string `json:"selectedClass"`
	SelectedSubject   string `json:"selectedSubject"`
	IsBundleMode      bool   `json:"isBundleMode"`
	BundleType        string `json:"bundleType"`
}

// CreateOrder handles POST /api/v1/orders.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "payment handler unavailable")
		return
	}
	var req createOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate(req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid order request: "+err.Error())
		return
	}

	order, err := h.Svc.CreateOrder(r.Context(), req.Amount, Selection{
		PhoneNumber:     req.PhoneNumber,
		SelectedClass:   req.SelectedClass,
		SelectedSubject: req.SelectedSubject,
		IsBundleMode:    req.IsBundleMode,
		BundleType:      req.BundleType,
	})
	if err != nil {
		status, message := errorShape(err, "Failed to create order")
		common.JSONError(w, status, message)
		return
	}
	common.JSON(w, http.StatusOK, order)
}

// VerifyPayment handles POST /api/v1/payments/verify.
func (h *Handler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Svc == nil {
		common.JSONFailure(w, http.StatusInternalServerError, "payment handler unavailable")
		return
	}
	var req verifyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate(req); err != nil {
		common.JSONFailure(w, http.StatusBadRequest, "invalid verification request: "+err.Error())
		return
	}

	conf := Confirmation{
		OrderID:   req.RazorpayOrderID,
		PaymentID: req.RazorpayPaymentID,
		Signature: req.RazorpaySignature,
	}
	sel := Selection{
		PhoneNumber:     req.PhoneNumber,
		SelectedClass:   req.SelectedClass,
		SelectedSubject: req.SelectedSubject,
		IsBundleMode:    req.IsBundleMode,
		BundleType:      req.BundleType,
	}
	links, err := h.Svc.Verify(r.Context(), conf, sel)
	if err != nil {
		status, message := errorShape(err, "Payment verification failed")
		common.JSONFailure(w, status, message)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"driveLinks": links,
	})
}

func (h *Handler) validate(v any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(v)
}

// errorShape maps service errors to a status and client-safe message. Anything
// that is not an AppError is reported generically rather than leaking internals.
func errorShape(err error, fallback string) (int, string) {
	if appErr, ok := common.AsAppError(err); ok {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		message := appErr.Message
		if message == "" {
			message = fallback
		}
		return status, message
	}
	return http.StatusInternalServerError, fallback
}
