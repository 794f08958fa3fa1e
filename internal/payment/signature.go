package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ExpectedSignature computes the provider's payment signature: HMAC-SHA256
// over "order_id|payment_id" keyed with the API key secret, hex encoded.
func ExpectedSignature(orderID, paymentID, secret string) string {
	if strings.TrimSpace(secret) == "" {
		return ""
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID))
	mac.Write([]byte("|"))
	mac.Write([]byte(paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether the supplied signature matches the expected
// one. Comparison is constant time; an empty secret never verifies.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	expected := ExpectedSignature(orderID, paymentID, secret)
	provided := strings.TrimSpace(signature)
	if expected == "" || provided == "" {
		return false
	}
	return hmac.Equal([]byte(expected), []byte(provided))
}
