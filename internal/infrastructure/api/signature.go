package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// Signature header names used by the app lifecycle endpoints. Registration
// requests are signed with the app secret, everything after the handshake
// with the per-shop secret.
const (
	HeaderAppSignature  = "shopware-app-signature"
	HeaderShopSignature = "shopware-shop-signature"
)

// ErrInvalidSignature is returned when a signature does not match the payload.
var ErrInvalidSignature = errors.New("invalid signature")

// SignPayload returns the hex-encoded HMAC-SHA256 of data under secret.
func SignPayload(secret string, data []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(data)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a hex HMAC-SHA256 signature in constant time.
func VerifySignature(secret string, data []byte, signature string) error {
	if !hmac.Equal([]byte(SignPayload(secret, data)), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}
