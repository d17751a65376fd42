package consent

// BannerSelectors match the consent overlay itself: explicit test hooks,
// common naming conventions and known consent frameworks.
var BannerSelectors = []string{
	`[data-testid="cookie-banner"]`,
	".cookie-banner",
	".cookie-consent",
	".cookie-notice",
	"#cookie-banner",
	`[class*="cookie"][class*="banner"]`,
	`[class*="cookie"][class*="consent"]`,
	`[id*="cookie"][id*="banner"]`,
	".onetrust-banner-sdk",
	"#onetrust-banner-sdk",
	".cookiebot",
	".CookieConsent",
	`[role="dialog"][aria-label*="cookie" i]`,
	`[role="banner"][class*="cookie"]`,
}

// RejectSelectors in priority order
var RejectSelectors = []string{
	`button:has-text("Reject")`,
	`button:has-text("Reject All")`,
	`button:has-text("Reject all")`,
	`button:has-text("Decline")`,
	`button:has-text("Decline All")`,
	`button:has-text("No thanks")`,
	`button:has-text("No")`,
	`[data-testid="reject-cookies"]`,
	`[data-testid="decline-cookies"]`,
	`[data-cy="reject-cookies"]`,
	".cookie-reject",
	".cookie-decline",
	"#reject-cookies",
	"#decline-cookies",
	".onetrust-reject-all-handler",
	`button[class*="reject"]`,
	`button[id*="reject"]`,
	`button[data-action="reject"]`,
}

// AcceptSelectors in priority order
var AcceptSelectors = []string{
	`button:has-text("Accept")`,
	`button:has-text("Accept All")`,
	`button:has-text("Accept all")`,
	`button:has-text("Allow")`,
	`button:has-text("Allow All")`,
	`button:has-text("OK")`,
	`button:has-text("Yes")`,
	`button:has-text("I Agree")`,
	`[data-testid="accept-cookies"]`,
	`[data-testid="allow-cookies"]`,
	`[data-cy="accept-cookies"]`,
	".cookie-accept",
	".cookie-allow",
	"#accept-cookies",
	"#allow-cookies",
	".onetrust-accept-btn-handler",
	`button[class*="accept"]`,
	`button[id*="accept"]`,
	`button[data-action="accept"]`,
}

// CloseSelectors are generic close controls probed inside the banner
var CloseSelectors = []string{
	`button:has-text("×")`,
	`button:has-text("✕")`,
	".close",
	".modal-close",
	`[aria-label="Close"]`,
	`[data-testid="close"]`,
	`button[title="Close"]`,
}

// RemovalSelectors is what the last-resort pass deletes from the DOM. Only
// plain CSS is allowed here since it runs through querySelectorAll.
var RemovalSelectors = append(append([]string{}, BannerSelectors...), `[class*="cookie"]`)

// LoadingSelectors match loading indicators the readiness wait expects to clear
var LoadingSelectors = []string{
	".loading",
	".spinner",
	`[data-testid="loading"]`,
}
