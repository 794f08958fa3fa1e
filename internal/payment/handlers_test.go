package payment

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	validator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func newTestHandler(p Provider) *Handler {
	return &Handler{
		Svc:      newTestService(p),
		Validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestCreateOrderHandlerSuccess(t *testing.T) {
	stub := &stubProvider{result: OrderResult{ID: "order_live_1", Amount: 6500, Currency: "INR"}}
	h := newTestHandler(stub)

	rr := postJSON(t, h.CreateOrder, `{
		"amount": 65,
		"phoneNumber": "9876543210",
		"selectedClass": "12",
		"isBundleMode": true,
		"bundleType": "pcmb_12"
	}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp OrderResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "order_live_1", resp.ID)
	require.Equal(t, int64(6500), resp.Amount)
	require.Equal(t, "INR", resp.Currency)
}

func TestCreateOrderHandlerRejectsMalformedBody(t *testing.T) {
	h := newTestHandler(&stubProvider{})
	rr := postJSON(t, h.CreateOrder, `{"amount": "sixty-five"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["error"])
}

func TestCreateOrderHandlerValidatesFields(t *testing.T) {
	h := newTestHandler(&stubProvider{})
	cases := map[string]string{
		"zero amount":     `{"amount": 0, "phoneNumber": "9876543210", "selectedClass": "12"}`,
		"negative amount": `{"amount": -5, "phoneNumber": "9876543210", "selectedClass": "12"}`,
		"missing phone":   `{"amount": 65, "selectedClass": "12"}`,
		"missing class":   `{"amount": 65, "phoneNumber": "9876543210"}`,
	}
	for name, body := range cases {
		rr := postJSON(t, h.CreateOrder, body)
		require.Equal(t, http.StatusBadRequest, rr.Code, name)
	}
}

func TestVerifyHandlerSuccess(t *testing.T) {
	h := newTestHandler(&stubProvider{})
	rr := postJSON(t, h.VerifyPayment, `{
		"razorpay_order_id": "`+testOrderID+`",
		"razorpay_payment_id": "`+testPaymentID+`",
		"razorpay_signature": "`+testSignature+`",
		"phoneNumber": "9876543210",
		"selectedClass": "12",
		"isBundleMode": true,
		"bundleType": "pcmb_12"
	}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Success    bool              `json:"success"`
		DriveLinks map[string]string `json:"driveLinks"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Len(t, resp.DriveLinks, 2)
}

func TestVerifyHandlerInvalidSignature(t *testing.T) {
	h := newTestHandler(&stubProvider{})
	rr := postJSON(t, h.VerifyPayment, `{
		"razorpay_order_id": "`+testOrderID+`",
		"razorpay_payment_id": "`+testPaymentID+`",
		"razorpay_signature": "deadbeef",
		"selectedClass": "12",
		"selectedSubject": "Physics"
	}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.Equal(t, "Invalid signature", resp.Error)
}

func TestVerifyHandlerRequiresConfirmationTriple(t *testing.T) {
	h := newTestHandler(&stubProvider{})
	rr := postJSON(t, h.VerifyPayment, `{"selectedClass": "12", "selectedSubject": "Physics"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestVerifyHandlerDistinctErrorMessages(t *testing.T) {
	h := newTestHandler(&stubProvider{})
	base := `"razorpay_order_id": "` + testOrderID + `",
		"razorpay_payment_id": "` + testPaymentID + `",
		"razorpay_signature": "` + testSignature + `"`

	cases := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"unknown bundle", `{` + base + `, "isBundleMode": true, "bundleType": "xyz"}`, http.StatusBadRequest, "Invalid bundle type"},
		{"no selection", `{` + base + `}`, http.StatusBadRequest, "No subject or bundle specified"},
		{"unroutable subject", `{` + base + `, "selectedClass": "9", "selectedSubject": "History"}`, http.StatusInternalServerError, "Could not generate download links"},
	}
	for _, tc := range cases {
		rr := postJSON(t, h.VerifyPayment, tc.body)
		require.Equal(t, tc.wantStatus, rr.Code, tc.name)

		var resp struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), tc.name)
		require.False(t, resp.Success, tc.name)
		require.Equal(t, tc.wantError, resp.Error, tc.name)
	}
}
