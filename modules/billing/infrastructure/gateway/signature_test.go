package gateway_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/billing/infrastructure/gateway"
)

func sign(secret, message string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyPaymentSignature(t *testing.T) {
	t.Parallel()

	const secret = "test-secret"
	signature := sign(secret, "order_123|pay_456")

	assert.True(t, gateway.VerifyPaymentSignature(secret, "order_123", "pay_456", signature))
	assert.False(t, gateway.VerifyPaymentSignature(secret, "order_123", "pay_999", signature))
	assert.False(t, gateway.VerifyPaymentSignature(secret, "order_999", "pay_456", signature))
	assert.False(t, gateway.VerifyPaymentSignature("wrong-secret", "order_123", "pay_456", signature))
	assert.False(t, gateway.VerifyPaymentSignature(secret, "order_123", "pay_456", ""))
}

func TestVerifyWebhookSignature(t *testing.T) {
	t.Parallel()

	const secret = "webhook-secret"
	body := []byte(`{"event":"payment.captured"}`)
	signature := sign(secret, string(body))

	assert.True(t, gateway.VerifyWebhookSignature(secret, body, signature))
	assert.False(t, gateway.VerifyWebhookSignature(secret, []byte(`{"event":"tampered"}`), signature))
	assert.False(t, gateway.VerifyWebhookSignature("wrong", body, signature))
	assert.False(t, gateway.VerifyWebhookSignature(secret, body, "not-hex!"))
}
