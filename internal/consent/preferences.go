package consent

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Preference is a consent choice applied without clicking through the banner
type Preference string

// Preferences
const (
	PreferenceReject Preference = "reject"
	PreferenceAccept Preference = "accept"
)

// ParsePreference validates a preference string. Empty means reject.
func ParsePreference(s string) (Preference, error) {
	switch Preference(s) {
	case "", PreferenceReject:
		return PreferenceReject, nil
	case PreferenceAccept:
		return PreferenceAccept, nil
	default:
		return "", fmt.Errorf("unknown consent preference %q", s)
	}
}

// StorageKeys are localStorage keys read by common consent tools
var StorageKeys = []string{
	"cookieConsent",
	"cookie-consent",
	"cookies-accepted",
	"greggs-cookies",
	"onetrust-consent",
	"CookieConsent",
	"cookiebot-consent",
	"cookie-preferences",
}

// OneTrust cookies that mark the banner as answered
const (
	AlertBoxClosedCookie = "OptanonAlertBoxClosed"
	ConsentCookie        = "OptanonConsent"
)

// Cookie is a cookie to seed into a browser context
type Cookie struct {
	Name   string
	Value  string
	Domain string
	Path   string
}

// InitScript returns JavaScript that records the preference in local and
// session storage before any page script runs
func InitScript(pref Preference) string {
	keys, _ := json.Marshal(StorageKeys)
	value, _ := json.Marshal(string(pref))
	return fmt.Sprintf(`(() => {
	const keys = %s;
	const value = %s;
	try {
		keys.forEach((key) => {
			localStorage.setItem(key, value);
			localStorage.setItem(key + "-status", value);
			localStorage.setItem(key + "-timestamp", Date.now().toString());
			sessionStorage.setItem(key, value);
		});
	} catch (e) {}
})();`, keys, value)
}

// Cookies returns the consent cookies for the preference on the given domain
func Cookies(domain string, pref Preference) []Cookie {
	return []Cookie{
		{Name: "cookie-consent", Value: string(pref), Domain: domain, Path: "/"},
		{Name: "cookies-preference", Value: string(pref), Domain: domain, Path: "/"},
	}
}

// StateHasConsent reports whether a serialized storage state already holds a
// consent record, either the OneTrust cookies or one of the storage keys
func StateHasConsent(state []byte) bool {
	if !gjson.ValidBytes(state) {
		return false
	}
	for _, name := range []string{AlertBoxClosedCookie, ConsentCookie, "cookie-consent"} {
		if gjson.GetBytes(state, fmt.Sprintf(`cookies.#(name==%q)`, name)).Exists() {
			return true
		}
	}
	for _, key := range StorageKeys {
		q := fmt.Sprintf(`origins.#.localStorage.#(name==%q)`, key)
		if len(gjson.GetBytes(state, q).Array()) > 0 {
			return true
		}
	}
	return false
}
