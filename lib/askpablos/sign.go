package askpablos

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"

	"github.com/mazen160/go-random"
)

// signPayload computes the request signature: HMAC-SHA256 over the canonical
// payload bytes keyed with the secret key, base64-encoded for the signature
// header. The server re-derives the same value from the body it receives, so
// the payload bytes must be sent exactly as signed.
func signPayload(payload []byte, secretKey string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write(payload)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// newNonce produces the replay-protection nonce carried in its own header
// next to the signature. It is not part of the signing input, so signatures
// stay a deterministic function of the payload.
func newNonce() (string, error) {
	return random.String(24)
}
