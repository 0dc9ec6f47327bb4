package askpablos

import "encoding/json"

// JSStrategy controls how much JavaScript and stealth behavior the remote
// browser renderer applies. The wire protocol represents the three known
// strategies as "DEFAULT", true and false; any other value is forwarded
// verbatim so new service-side strategies don't require a client release.
type JSStrategy string

const (
	// JSStrategyDefault lets the service apply its own rendering techniques.
	JSStrategyDefault JSStrategy = "DEFAULT"
	// JSStrategyStealthMinimal injects the stealth script and runs minimal JS.
	JSStrategyStealthMinimal JSStrategy = "STEALTH_MINIMAL"
	// JSStrategyDisabled skips stealth injection and JS rendering entirely.
	JSStrategyDisabled JSStrategy = "DISABLED"
)

func (s JSStrategy) isDefault() bool {
	return s == "" || s == JSStrategyDefault
}

// wireValue renders the strategy the way the service spells it in messages
// and on the wire: true, false, or the strategy name.
func (s JSStrategy) wireValue() string {
	switch s {
	case JSStrategyStealthMinimal:
		return "true"
	case JSStrategyDisabled:
		return "false"
	case JSStrategyDefault, "":
		return string(JSStrategyDefault)
	}
	return string(s)
}

func (s JSStrategy) MarshalJSON() ([]byte, error) {
	switch s {
	case JSStrategyStealthMinimal:
		return []byte("true"), nil
	case JSStrategyDisabled:
		return []byte("false"), nil
	case JSStrategyDefault, "":
		return json.Marshal(string(JSStrategyDefault))
	}
	return json.Marshal(string(s))
}

// DefaultTimeoutSeconds bounds the proxy round trip when GetOptions.TimeoutSeconds
// is left at zero.
const DefaultTimeoutSeconds = 30

// maxTimeoutSeconds is the longest round trip the service accepts.
const maxTimeoutSeconds = 300

// GetOptions customizes a single Get call. The zero value requests a plain
// proxied fetch with the documented defaults.
type GetOptions struct {
	// Params are query parameters merged into the target URL.
	Params map[string]string
	// Headers are custom headers relayed to the target site.
	Headers map[string]string
	// Browser renders the target page in a remote headless browser instead
	// of fetching it with a plain HTTP request.
	Browser bool
	// RotateProxy routes this request through a rotating proxy IP.
	RotateProxy bool
	// WaitForLoad waits for page load completion. Requires Browser.
	WaitForLoad bool
	// Screenshot captures an image of the rendered page. Requires Browser.
	Screenshot bool
	// JSStrategy selects the renderer's JavaScript strategy. Any value other
	// than JSStrategyDefault requires Browser.
	JSStrategy JSStrategy
	// TimeoutSeconds bounds the proxy round trip. Defaults to
	// DefaultTimeoutSeconds, capped at 300.
	TimeoutSeconds int
	// Extra holds forward-compatible proxy options (user_agent, cookies, ...)
	// passed through to the service untouched.
	Extra map[string]any
}

func (o GetOptions) withDefaults() GetOptions {
	if o.TimeoutSeconds == 0 {
		o.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if o.JSStrategy == "" {
		o.JSStrategy = JSStrategyDefault
	}
	return o
}

// proxyOptions builds the options object of the wire payload. Browser-dependent
// keys are only present when browser mode is on, matching what the service
// expects for plain fetches.
func (o GetOptions) proxyOptions() map[string]any {
	opts := map[string]any{
		"browser":      o.Browser,
		"rotate_proxy": o.RotateProxy,
		"timeout":      o.TimeoutSeconds,
	}
	if o.Browser {
		opts["wait_for_load"] = o.WaitForLoad
		opts["screenshot"] = o.Screenshot
		opts["js_strategy"] = o.JSStrategy
	}
	for k, v := range o.Extra {
		opts[k] = v
	}
	return opts
}
