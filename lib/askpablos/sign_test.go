package askpablos

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignatureDeterminism(t *testing.T) {
	payload, err := buildPayload("https://example.com", GetOptions{}.withDefaults())
	if err != nil {
		t.Fatal(err)
	}

	first := signPayload(payload, "485A4373B3452B7D27A2F25A45865")
	for i := 0; i < 10; i++ {
		require.Equal(t, first, signPayload(payload, "485A4373B3452B7D27A2F25A45865"))
	}

	// fixed vector pins the canonical serialization across releases
	require.Equal(t, "SGAsORZhQbUaEOEgWJqSCImFNqXw8t9MjPj1l6zZM6A=", first)
}

func TestSignatureSensitivity(t *testing.T) {
	base := GetOptions{}.withDefaults()
	basePayload, err := buildPayload("https://example.com", base)
	if err != nil {
		t.Fatal(err)
	}
	baseSig := signPayload(basePayload, "secret")

	variants := []struct {
		name   string
		url    string
		mutate func(*GetOptions)
	}{
		{name: "url", url: "https://example.org"},
		{name: "param", url: "https://example.com", mutate: func(o *GetOptions) {
			o.Params = map[string]string{"q": "1"}
		}},
		{name: "header", url: "https://example.com", mutate: func(o *GetOptions) {
			o.Headers = map[string]string{"User-Agent": "bot"}
		}},
		{name: "rotate_proxy", url: "https://example.com", mutate: func(o *GetOptions) {
			o.RotateProxy = true
		}},
		{name: "timeout", url: "https://example.com", mutate: func(o *GetOptions) {
			o.TimeoutSeconds = 60
		}},
		{name: "browser", url: "https://example.com", mutate: func(o *GetOptions) {
			o.Browser = true
		}},
		{name: "extra", url: "https://example.com", mutate: func(o *GetOptions) {
			o.Extra = map[string]any{"user_agent": "custom"}
		}},
	}

	for _, test := range variants {
		opts := GetOptions{}.withDefaults()
		if test.mutate != nil {
			test.mutate(&opts)
		}
		payload, err := buildPayload(test.url, opts)
		if err != nil {
			t.Fatal(err)
		}
		require.NotEqual(t, baseSig, signPayload(payload, "secret"), "variant %q", test.name)
	}

	require.NotEqual(t, baseSig, signPayload(basePayload, "other-secret"))
}

func TestNonceUniqueness(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		nonce, err := newNonce()
		if err != nil {
			t.Fatal(err)
		}
		require.False(t, seen[nonce])
		seen[nonce] = true
	}
}
