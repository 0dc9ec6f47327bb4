package askpablos

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBrowserDependencyViolations(t *testing.T) {
	err := validateBrowserDependencies(GetOptions{
		Browser:     false,
		WaitForLoad: true,
		Screenshot:  true,
		JSStrategy:  JSStrategyStealthMinimal,
	})
	require.NotNil(t, err)
	require.Equal(t, KindValidation, err.Kind)
	require.Equal(t, []string{
		"wait_for_load=True",
		"screenshot=True",
		"js_strategy=true",
	}, err.Options)
	require.Equal(
		t,
		"browser=True is required for these actions: wait_for_load=True, screenshot=True, js_strategy=true",
		err.Message,
	)
}

func TestBrowserDependencyValidCombos(t *testing.T) {
	cases := []GetOptions{
		{Browser: true, WaitForLoad: true, Screenshot: true, JSStrategy: JSStrategyDefault},
		{Browser: true, JSStrategy: JSStrategyDisabled},
		{Browser: false, JSStrategy: JSStrategyDefault},
		{Browser: false},
		{Browser: false, RotateProxy: true, TimeoutSeconds: 10},
	}
	for _, opts := range cases {
		require.Nil(t, validateBrowserDependencies(opts))
	}
}

func TestBrowserDependencySingleViolation(t *testing.T) {
	err := validateBrowserDependencies(GetOptions{Screenshot: true})
	require.NotNil(t, err)
	require.Equal(t, []string{"screenshot=True"}, err.Options)
}

func TestValidateTargetURL(t *testing.T) {
	cases := []struct {
		url string
		ok  bool
	}{
		{url: "https://example.com", ok: true},
		{url: "http://example.com/path?a=1", ok: true},
		{url: "", ok: false},
		{url: "   ", ok: false},
		{url: "ftp://example.com", ok: false},
		{url: "example.com", ok: false},
	}
	for _, test := range cases {
		err := validateTargetURL(test.url)
		if test.ok {
			require.Nil(t, err, "url %q", test.url)
		} else {
			require.NotNil(t, err, "url %q", test.url)
			require.Equal(t, KindValidation, err.Kind)
		}
	}
}

func TestValidateTimeout(t *testing.T) {
	require.Nil(t, validateTimeout(1))
	require.Nil(t, validateTimeout(300))
	require.NotNil(t, validateTimeout(0))
	require.NotNil(t, validateTimeout(-5))
	require.NotNil(t, validateTimeout(301))
}

func TestValidateStringMap(t *testing.T) {
	require.Nil(t, validateStringMap("header", nil))
	require.Nil(t, validateStringMap("header", map[string]string{"User-Agent": "bot"}))
	require.NotNil(t, validateStringMap("header", map[string]string{" ": "x"}))
}

func TestValidateRequestRunsEveryCheck(t *testing.T) {
	opts := GetOptions{Screenshot: true}.withDefaults()
	err := validateRequest("https://example.com", opts)
	require.NotNil(t, err)
	require.Equal(t, []string{"screenshot=True"}, err.Options)

	require.NotNil(t, validateRequest("not a url", GetOptions{}.withDefaults()))
	require.Nil(t, validateRequest("https://example.com", GetOptions{}.withDefaults()))
}
