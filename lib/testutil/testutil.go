package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"askpablos-go/lib/telemetry"
)

// Exchange records one request the fake proxy received.
type Exchange struct {
	APIKey    string
	Signature string
	Nonce     string
	Payload   []byte
}

// FakeProxy is an in-process stand-in for the proxy endpoint. It records the
// auth headers and payload of every request before delegating to the
// configured handler.
type FakeProxy struct {
	Server *httptest.Server

	mu        sync.Mutex
	exchanges []Exchange
}

// StartFakeProxy spins up a fake proxy endpoint for the lifetime of the test.
// handler produces the reply; a nil handler answers 200 with an empty JSON
// envelope.
func StartFakeProxy(t testing.TB, handler http.HandlerFunc) *FakeProxy {
	cleanup := telemetry.SetupForTesting(t, "test:lib/testutil")
	t.Cleanup(cleanup)

	if handler == nil {
		handler = func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{}`))
		}
	}

	proxy := &FakeProxy{}
	proxy.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Error(err)
		}

		proxy.mu.Lock()
		proxy.exchanges = append(proxy.exchanges, Exchange{
			APIKey:    r.Header.Get("X-API-Key"),
			Signature: r.Header.Get("X-Signature"),
			Nonce:     r.Header.Get("X-Request-Nonce"),
			Payload:   body,
		})
		proxy.mu.Unlock()

		handler(w, r)
	}))
	t.Cleanup(proxy.Server.Close)

	return proxy
}

// URL returns the endpoint to hand to the client under test.
func (p *FakeProxy) URL() string {
	return p.Server.URL
}

// Exchanges returns a snapshot of everything received so far.
func (p *FakeProxy) Exchanges() []Exchange {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Exchange, len(p.exchanges))
	copy(out, p.exchanges)
	return out
}

// LastExchange fails the test when nothing has been received yet.
func (p *FakeProxy) LastExchange(t testing.TB) Exchange {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.exchanges) == 0 {
		t.Fatal("fake proxy has not received any requests")
	}
	return p.exchanges[len(p.exchanges)-1]
}
