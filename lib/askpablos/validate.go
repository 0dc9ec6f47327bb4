package askpablos

import (
	"fmt"
	"net/url"
	"strings"
)

// validateRequest runs every parameter check before any signing or network
// I/O happens. It is a pure function of its inputs.
func validateRequest(target string, o GetOptions) *Error {
	if err := validateTargetURL(target); err != nil {
		return err
	}
	if err := validateStringMap("header", o.Headers); err != nil {
		return err
	}
	if err := validateStringMap("query parameter", o.Params); err != nil {
		return err
	}
	if err := validateTimeout(o.TimeoutSeconds); err != nil {
		return err
	}
	return validateBrowserDependencies(o)
}

// validateBrowserDependencies enforces the rule table for browser-dependent
// options. Violations are collected in declaration order and reported in one
// combined error rather than failing on the first.
func validateBrowserDependencies(o GetOptions) *Error {
	if o.Browser {
		return nil
	}

	var violations []string
	if o.WaitForLoad {
		violations = append(violations, "wait_for_load=True")
	}
	if o.Screenshot {
		violations = append(violations, "screenshot=True")
	}
	if !o.JSStrategy.isDefault() {
		violations = append(violations, fmt.Sprintf("js_strategy=%s", o.JSStrategy.wireValue()))
	}

	if len(violations) == 0 {
		return nil
	}
	return newBrowserRequiredError(violations)
}

func validateTargetURL(target string) *Error {
	if strings.TrimSpace(target) == "" {
		return newValidationError("url is required and cannot be empty")
	}
	parsed, err := url.Parse(target)
	if err != nil {
		return newValidationError(fmt.Sprintf("url is not parseable: %s", err))
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return newValidationError("url must start with 'http://' or 'https://'")
	}
	return nil
}

func validateTimeout(seconds int) *Error {
	if seconds <= 0 {
		return newValidationError("timeout must be greater than 0")
	}
	if seconds > maxTimeoutSeconds {
		return newValidationError(fmt.Sprintf("timeout cannot exceed %d seconds", maxTimeoutSeconds))
	}
	return nil
}

func validateStringMap(name string, m map[string]string) *Error {
	for k := range m {
		if strings.TrimSpace(k) == "" {
			return newValidationError(fmt.Sprintf("%s keys cannot be empty", name))
		}
	}
	return nil
}
