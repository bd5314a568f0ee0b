// Package identity verifies the identity tokens of the sign-in providers.
package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/shishikan-sg/shishikan/internal/sskerror"
)

// DefaultGoogleTokenInfoURL is the Google endpoint validating ID tokens.
const DefaultGoogleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

var googleIssuers = map[string]bool{
	"accounts.google.com":         true,
	"https://accounts.google.com": true,
}

type (
	// An Identity is a verified account of an identity provider.
	Identity struct {
		Subject string // Stable account id
		Email   string
		Name    string
		Picture string
	}

	// A Verifier verifies an identity token.
	Verifier interface {
		Verify(ctx context.Context, token string) (*Identity, error)
	}

	google struct {
		http     *http.Client
		endpoint string
		clientID string
	}

	tokeninfo struct {
		Issuer        string `json:"iss"`
		Audience      string `json:"aud"`
		Subject       string `json:"sub"`
		Email         string `json:"email"`
		EmailVerified string `json:"email_verified"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
		Expiry        string `json:"exp"`
	}
)

// NewGoogle returns a Verifier of Google ID tokens issued for the given OAuth client.
func NewGoogle(c *http.Client, endpoint, clientID string) (Verifier, error) {
	if clientID == "" {
		return nil, errors.New("google: missing client id")
	}
	if endpoint == "" {
		endpoint = DefaultGoogleTokenInfoURL
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, errors.Wrap(err, "google: could not parse tokeninfo url")
	}
	if c == nil {
		c = http.DefaultClient
	}

	return &google{
		http:     c,
		endpoint: endpoint,
		clientID: clientID,
	}, nil
}

func invalid(message string) error {
	return sskerror.NewWithTagCode(http.StatusUnauthorized, sskerror.TagInvalidToken, message)
}

func (g *google) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, invalid("No ID token provided.")
	}

	u, _ := url.Parse(g.endpoint) // Checked by NewGoogle
	q := u.Query()
	q.Set("id_token", token)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "google: could not build request")
	}

	res, err := g.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "google: could not perform request")
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 && res.StatusCode < 500 {
		return nil, invalid("Invalid ID token.")
	}
	if res.StatusCode >= 300 {
		return nil, errors.Errorf("google: unexpected HTTP status %d", res.StatusCode)
	}

	var info tokeninfo
	if err = json.NewDecoder(res.Body).Decode(&info); err != nil {
		return nil, errors.Wrap(err, "google: could not parse response")
	}

	if !googleIssuers[info.Issuer] || info.Audience != g.clientID || info.Subject == "" {
		return nil, invalid("Invalid ID token.")
	}

	exp, err := strconv.ParseInt(info.Expiry, 10, 64)
	if err != nil || time.Unix(exp, 0).Before(time.Now()) {
		return nil, invalid("Expired ID token.")
	}

	identity := &Identity{
		Subject: info.Subject,
		Name:    info.Name,
		Picture: info.Picture,
	}
	if info.EmailVerified == "true" {
		identity.Email = info.Email
	}
	return identity, nil
}
