package askpablos

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"time"
)

// rawResponse mirrors the JSON envelope returned by the proxy endpoint.
type rawResponse struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Content    string            `json:"content"`
	URL        string            `json:"url"`
	TimeTaken  float64           `json:"time_taken"`
	Encoding   string            `json:"encoding"`
	Screenshot string            `json:"screenshot"`
}

// ResponseData is the decoded result of one proxied fetch. StatusCode and
// Headers describe the target site's response; a 404 from the target is still
// a successful proxy operation. The struct is owned by the caller after
// return, the client keeps no reference to it.
type ResponseData struct {
	// StatusCode is the HTTP status returned by the target server.
	StatusCode int
	// Headers holds the target server's response headers.
	Headers map[string]string
	// Content is the response body.
	Content string
	// URL is the final URL after any redirects.
	URL string
	// ElapsedTime is how long the fetch took.
	ElapsedTime time.Duration
	// Encoding is the response text encoding, when reported.
	Encoding string
	// JSON is the body parsed as JSON, or nil when the body is not valid
	// JSON. Best-effort only, never a reason for the call to fail.
	JSON any
	// Screenshot is the decoded screenshot image, or nil when absent.
	Screenshot []byte
}

// decodeResponse parses the proxy envelope into a ResponseData. Optional
// fields are tolerant: a body that isn't JSON or a corrupt screenshot payload
// is dropped without failing the call. elapsed is the locally measured round
// trip, used when the envelope omits time_taken.
func decodeResponse(ctx context.Context, body []byte, elapsed time.Duration) (*ResponseData, error) {
	var raw rawResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &Error{
			Kind:    KindResponse,
			Message: "proxy endpoint returned a malformed reply",
			cause:   err,
		}
	}

	data := &ResponseData{
		StatusCode:  raw.StatusCode,
		Headers:     raw.Headers,
		Content:     raw.Content,
		URL:         raw.URL,
		ElapsedTime: elapsed,
		Encoding:    raw.Encoding,
	}
	if raw.TimeTaken > 0 {
		data.ElapsedTime = time.Duration(raw.TimeTaken * float64(time.Second))
	}

	var parsed any
	if err := json.Unmarshal([]byte(raw.Content), &parsed); err == nil {
		data.JSON = parsed
	}

	if raw.Screenshot != "" {
		image, err := base64.StdEncoding.DecodeString(raw.Screenshot)
		if err != nil {
			slog.WarnContext(ctx, "discarding corrupt screenshot payload", "err", err)
		} else {
			data.Screenshot = image
		}
	}

	return data, nil
}
