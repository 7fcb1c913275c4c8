package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifyPaymentSignature checks the checkout callback signature: HMAC-SHA256
// of "orderID|paymentID" keyed with the API secret, hex encoded.
func VerifyPaymentSignature(keySecret, gatewayOrderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(keySecret))
	_, _ = mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyWebhookSignature checks the webhook signature: HMAC-SHA256 of the raw
// request body keyed with the webhook secret, hex encoded.
func VerifyWebhookSignature(webhookSecret string, rawBody []byte, signature string) bool {
	providedSig, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	_, _ = mac.Write(rawBody)
	return hmac.Equal(mac.Sum(nil), providedSig)
}
