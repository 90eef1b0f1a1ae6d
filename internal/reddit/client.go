package reddit

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	tokenURL   = "https://www.reddit.com/api/v1/access_token"
	apiBaseURL = "https://oauth.reddit.com"
	siteURL    = "https://reddit.com"
)

// Credentials identify a Reddit "script" or "web" application.
type Credentials struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
}

// newCredentialsConfig describes Reddit's application-only OAuth flow.
func newCredentialsConfig(creds Credentials, tokenEndpoint string) *clientcredentials.Config {
	return &clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     tokenEndpoint,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
}

// httpClient returns the client used for one Fetch. With credentials
// configured it first exchanges them for a bearer token under ctx, so the
// token request is bounded by the same deadline as the listing requests.
// Reddit rejects requests without a descriptive User-Agent, so the token
// request goes through the same transport as API requests.
func (c *Collector) httpClient(ctx context.Context) (*http.Client, error) {
	if c.auth == nil {
		return &http.Client{Transport: c.transport}, nil
	}
	tokenCtx := context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Transport: c.transport})
	tok, err := c.auth.Token(tokenCtx)
	if err != nil {
		return nil, fmt.Errorf("fetching reddit access token: %w", err)
	}
	return &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(tok),
			Base:   c.transport,
		},
	}, nil
}

// userAgentTransport sets the User-Agent header and reports when the
// per-client rate limit window is close to exhausted.
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

const lowRateLimitThreshold = 10

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request.
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.userAgent)

	resp, err := t.base.RoundTrip(r)
	if err != nil {
		return nil, err
	}

	if remaining := resp.Header.Get("X-Ratelimit-Remaining"); remaining != "" {
		rem, parseErr := strconv.ParseFloat(remaining, 64)
		if parseErr == nil && rem <= lowRateLimitThreshold {
			reset, _ := strconv.Atoi(resp.Header.Get("X-Ratelimit-Reset"))
			slog.Warn("approaching reddit rate limit",
				"remaining", rem, "reset", time.Duration(reset)*time.Second)
		}
	}
	return resp, nil
}
