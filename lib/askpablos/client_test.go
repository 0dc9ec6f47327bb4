package askpablos

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"askpablos-go/lib/testutil"

	"github.com/stretchr/testify/require"
)

func TestNewClientCredentialGuard(t *testing.T) {
	cases := []struct {
		name      string
		apiKey    string
		secretKey string
	}{
		{name: "empty api key", apiKey: "", secretKey: "secret"},
		{name: "empty secret key", apiKey: "key", secretKey: ""},
		{name: "whitespace api key", apiKey: "   ", secretKey: "secret"},
		{name: "whitespace secret key", apiKey: "key", secretKey: "\t\n"},
		{name: "both empty", apiKey: "", secretKey: ""},
	}

	for _, test := range cases {
		_, err := NewClient(ClientOptions{APIKey: test.apiKey, SecretKey: test.secretKey})
		require.Error(t, err, test.name)
		require.True(t, IsConfiguration(err), test.name)
	}

	client, err := NewClient(ClientOptions{APIKey: "key", SecretKey: "secret"})
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, DefaultBaseURL, client.baseURL)
}

func TestGetEndToEnd(t *testing.T) {
	proxy := testutil.StartFakeProxy(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status_code": 200,
			"headers":     map[string]string{"Content-Type": "application/json"},
			"content":     `{"a": 1}`,
			"url":         "https://example.com/?q=1",
			"time_taken":  0.5,
			"encoding":    "utf-8",
		})
	})

	client, err := NewClient(ClientOptions{
		APIKey:    "SNXLjcXYG4RSCHA2uFPeMXaeyOTVTdhI",
		SecretKey: "485A4373B3452B7D27A2F25A45865",
		BaseURL:   proxy.URL(),
	})
	if err != nil {
		t.Fatal(err)
	}

	res, err := client.Get(context.Background(), "https://example.com", GetOptions{
		Params: map[string]string{"q": "1"},
	})
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(t, 200, res.StatusCode)
	require.Equal(t, map[string]any{"a": float64(1)}, res.JSON)
	require.Equal(t, "https://example.com/?q=1", res.URL)
	require.Equal(t, 500*time.Millisecond, res.ElapsedTime)

	exchange := proxy.LastExchange(t)
	require.Equal(t, "SNXLjcXYG4RSCHA2uFPeMXaeyOTVTdhI", exchange.APIKey)
	require.NotEmpty(t, exchange.Nonce)
	// the server verifies by re-deriving the HMAC from the received body
	require.Equal(t, signPayload(exchange.Payload, "485A4373B3452B7D27A2F25A45865"), exchange.Signature)

	var payload struct {
		URL    string `json:"url"`
		Method string `json:"method"`
	}
	err = json.Unmarshal(exchange.Payload, &payload)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "https://example.com?q=1", payload.URL)
	require.Equal(t, "GET", payload.Method)
}

func TestGetValidationShortCircuits(t *testing.T) {
	proxy := testutil.StartFakeProxy(t, nil)

	client, err := NewClient(ClientOptions{APIKey: "key", SecretKey: "secret", BaseURL: proxy.URL()})
	if err != nil {
		t.Fatal(err)
	}

	_, err = client.Get(context.Background(), "https://example.com", GetOptions{
		Screenshot: true,
	})
	require.Error(t, err)
	require.True(t, IsValidation(err))
	require.Empty(t, proxy.Exchanges(), "validation failures must not reach the network")
}

func TestGetResponseError(t *testing.T) {
	proxy := testutil.StartFakeProxy(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": "invalid signature"}`))
	})

	client, err := NewClient(ClientOptions{APIKey: "key", SecretKey: "secret", BaseURL: proxy.URL()})
	if err != nil {
		t.Fatal(err)
	}

	_, err = client.Get(context.Background(), "https://example.com", GetOptions{})
	require.Error(t, err)
	require.True(t, IsResponse(err))

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	require.Contains(t, apiErr.Message, "invalid signature")
}

func TestGetConnectionError(t *testing.T) {
	proxy := testutil.StartFakeProxy(t, nil)
	endpoint := proxy.URL()
	proxy.Server.Close()

	client, err := NewClient(ClientOptions{APIKey: "key", SecretKey: "secret", BaseURL: endpoint})
	if err != nil {
		t.Fatal(err)
	}

	_, err = client.Get(context.Background(), "https://example.com", GetOptions{})
	require.Error(t, err)
	require.True(t, IsConnection(err))
	require.False(t, IsResponse(err))
}

func TestGetTimeoutMapsToConnectionError(t *testing.T) {
	proxy := testutil.StartFakeProxy(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(3 * time.Second)
	})

	client, err := NewClient(ClientOptions{APIKey: "key", SecretKey: "secret", BaseURL: proxy.URL()})
	if err != nil {
		t.Fatal(err)
	}

	start := time.Now()
	_, err = client.Get(context.Background(), "https://example.com", GetOptions{TimeoutSeconds: 1})
	require.Error(t, err)
	require.True(t, IsConnection(err))
	require.Less(t, time.Since(start), 3*time.Second)
}

func TestGetConcurrent(t *testing.T) {
	proxy := testutil.StartFakeProxy(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status_code": 200, "content": "ok"}`))
	})

	client, err := NewClient(ClientOptions{APIKey: "key", SecretKey: "secret", BaseURL: proxy.URL()})
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := client.Get(context.Background(), "https://example.com", GetOptions{})
			if err != nil {
				t.Error(err)
				return
			}
			if res.StatusCode != 200 {
				t.Errorf("unexpected status %d", res.StatusCode)
			}
		}()
	}
	wg.Wait()

	require.Len(t, proxy.Exchanges(), 16)
}

func TestErrorTaxonomyCatchAll(t *testing.T) {
	// every failure is matchable as *Error, the common base for callers that
	// don't care about the category
	_, err := NewClient(ClientOptions{})
	var base *Error
	require.True(t, errors.As(err, &base))
	require.Equal(t, KindConfiguration, base.Kind)
}
