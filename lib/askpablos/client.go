package askpablos

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

// DefaultBaseURL is the production proxy endpoint.
const DefaultBaseURL = "https://api.askpablos.com/v1/fetch"

// Client sends authenticated GET requests through the AskPablos proxy
// service. It holds only the immutable credentials, the endpoint and the
// underlying transport, so a single instance is safe for concurrent use.
type Client struct {
	apiKey    string
	secretKey string
	baseURL   string
	http      *resty.Client
}

type ClientOptions struct {
	// APIKey identifies the account, sent verbatim in the X-API-Key header.
	APIKey string
	// SecretKey signs every request. It is never sent over the wire.
	SecretKey string
	// BaseURL overrides the proxy endpoint, for tests or self-hosted
	// deployments. Defaults to DefaultBaseURL.
	BaseURL string
}

func NewClient(opts ClientOptions) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, newConfigurationError("api_key is required")
	}
	if strings.TrimSpace(opts.SecretKey) == "" {
		return nil, newConfigurationError("secret_key is required")
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{Kind: KindConfiguration, Message: "base url is not a valid absolute url", cause: err}
	}

	http := resty.New()
	instrumentHTTP(http)

	return &Client{
		apiKey:    opts.APIKey,
		secretKey: opts.SecretKey,
		baseURL:   baseURL,
		http:      http,
	}, nil
}

// Get fetches a target URL through the proxy. It validates the options,
// builds and signs the canonical payload, performs the round trip and
// decodes the reply, short-circuiting on the first failing stage. The
// returned error is always an *Error; use the Kind helpers to branch.
func (c *Client) Get(ctx context.Context, target string, opts GetOptions) (*ResponseData, error) {
	ctx, span := tracer.Start(ctx, "client:Get")
	defer span.End()

	opts = opts.withDefaults()

	if verr := validateRequest(target, opts); verr != nil {
		span.SetStatus(codes.Error, "request validation failed")
		return nil, verr
	}

	payload, err := buildPayload(target, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to build request payload")
		return nil, &Error{Kind: KindValidation, Message: "failed to build request payload", cause: err}
	}
	signature := signPayload(payload, c.secretKey)

	body, elapsed, err := c.send(ctx, payload, signature, time.Duration(opts.TimeoutSeconds)*time.Second)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "proxy round trip failed")
		slog.ErrorContext(ctx, "GET request failed", "url", target, "err", err)
		return nil, err
	}

	data, err := decodeResponse(ctx, body, elapsed)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode proxy reply")
		return nil, err
	}

	slog.DebugContext(
		ctx, "proxied fetch complete",
		"url", data.URL,
		"status", data.StatusCode,
		"elapsed", data.ElapsedTime,
	)
	return data, nil
}
