package payment

import "testing"

const (
	testSecret    = "test_key_secret"
	testOrderID   = "order_MkDYtH8M8d0pQa"
	testPaymentID = "pay_N1xQrTz4Wl2bVe"
	// HMAC-SHA256("order_MkDYtH8M8d0pQa|pay_N1xQrTz4Wl2bVe", "test_key_secret")
	testSignature = "5e2dad26838ee25a5c958a02eba559bf3e7b435573fc5cfc2b8b36bde9af627d"
)

func TestExpectedSignatureKnownVector(t *testing.T) {
	got := ExpectedSignature(testOrderID, testPaymentID, testSecret)
	if got != testSignature {
		t.Fatalf("expected %s, got %s", testSignature, got)
	}
}

func TestVerifySignature(t *testing.T) {
	if !VerifySignature(testOrderID, testPaymentID, testSignature, testSecret) {
		t.Fatal("expected valid signature to verify")
	}
}

func TestVerifySignatureRejectsMutations(t *testing.T) {
	cases := map[string]struct {
		orderID   string
		paymentID string
		signature string
		secret    string
	}{
		"flipped order id":    {testOrderID[:len(testOrderID)-1] + "b", testPaymentID, testSignature, testSecret},
		"flipped payment id":  {testOrderID, "pay_N1xQrTz4Wl2bVf", testSignature, testSecret},
		"flipped signature":   {testOrderID, testPaymentID, "4" + testSignature[1:], testSecret},
		"wrong secret":        {testOrderID, testPaymentID, testSignature, "other_secret"},
		"empty signature":     {testOrderID, testPaymentID, "", testSecret},
		"empty secret":        {testOrderID, testPaymentID, testSignature, ""},
		"swapped identifiers": {testPaymentID, testOrderID, testSignature, testSecret},
	}
	for name, tc := range cases {
		if VerifySignature(tc.orderID, tc.paymentID, tc.signature, tc.secret) {
			t.Errorf("%s: expected verification failure", name)
		}
	}
}
