package identity

import (
	"net/url"
	"strings"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/config"
)

// SignInURL builds the provider's OAuth authorize URL for the popup flow.
// The account chooser is always shown so a shared terminal can switch users.
func SignInURL(cfg config.AuthConfig) string {
	q := url.Values{}
	q.Set("provider", cfg.OAuthVendor)
	if cfg.RedirectURL != "" {
		q.Set("redirect_to", cfg.RedirectURL)
	}
	q.Set("prompt", "select_account")

	return strings.TrimRight(cfg.ProviderURL, "/") + "/auth/v1/authorize?" + q.Encode()
}
