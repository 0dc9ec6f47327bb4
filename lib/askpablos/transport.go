package askpablos

import (
	"context"
	"encoding/json"
	"strings"
	"time"
)

const (
	apiKeyHeader    = "X-API-Key"
	signatureHeader = "X-Signature"
	nonceHeader     = "X-Request-Nonce"
)

// errorBody is the optional message envelope the proxy returns on failures.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// send performs the single signed round trip to the proxy endpoint. The
// timeout bounds this call only; validation and decoding happen outside it.
// Transport-level failures come back as connection errors, a non-2xx status
// from the endpoint itself as a response error.
func (c *Client) send(ctx context.Context, payload []byte, signature string, timeout time.Duration) ([]byte, time.Duration, error) {
	nonce, err := newNonce()
	if err != nil {
		return nil, 0, newConnectionError("failed to generate request nonce", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader(apiKeyHeader, c.apiKey).
		SetHeader(signatureHeader, signature).
		SetHeader(nonceHeader, nonce).
		SetBody(payload).
		Post(c.baseURL)
	if err != nil {
		return nil, 0, newConnectionError("failed to complete round trip with proxy endpoint", err)
	}

	status := res.StatusCode()
	if status < 200 || status > 299 {
		return nil, 0, newResponseError(status, endpointErrorMessage(res.Body()))
	}

	return res.Body(), res.Time(), nil
}

// endpointErrorMessage extracts a human-readable message from an error reply,
// falling back to the raw body when it isn't the usual JSON envelope.
func endpointErrorMessage(body []byte) string {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Error != "" {
			return parsed.Error
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	return "proxy endpoint returned an error status"
}
