package askpablos

import (
	"encoding/json"
	"net/url"
)

// requestPayload is the wire payload sent to the proxy endpoint. Its JSON
// form doubles as the canonical signing input: struct fields keep a fixed
// order and encoding/json emits map keys sorted, so semantically identical
// requests always serialize to identical bytes.
type requestPayload struct {
	URL     string            `json:"url"`
	Method  string            `json:"method"`
	Headers map[string]string `json:"headers,omitempty"`
	Options map[string]any    `json:"options"`
}

// mergeQuery appends params to target's query string, merging with any
// parameters the URL already carries instead of duplicating them.
func mergeQuery(target string, params map[string]string) (string, error) {
	if len(params) == 0 {
		return target, nil
	}

	parsed, err := url.Parse(target)
	if err != nil {
		return "", err
	}
	query := parsed.Query()
	for k, v := range params {
		query.Set(k, v)
	}
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

// buildPayload assembles the canonical payload bytes for a validated request.
func buildPayload(target string, o GetOptions) ([]byte, error) {
	merged, err := mergeQuery(target, o.Params)
	if err != nil {
		return nil, err
	}
	return json.Marshal(requestPayload{
		URL:     merged,
		Method:  "GET",
		Headers: o.Headers,
		Options: o.proxyOptions(),
	})
}
