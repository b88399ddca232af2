// Package auth carries the bearer credential for the Applaude backend. The
// credential is constructed once at startup and passed by reference into
// every component that talks to the backend; there is no global token store.
package auth

import (
	"errors"
	"net/http"
	"net/url"
)

// ErrNoToken indicates no bearer token is available.
var ErrNoToken = errors.New("no access token configured")

// Credential is an authenticated identity against the Applaude API: a JWT
// access token and the display name the backend greets the user by.
type Credential struct {
	Token     string
	Username  string
	FirstName string
}

// New returns a credential for the given token and user names.
func New(token, username, firstName string) *Credential {
	return &Credential{Token: token, Username: username, FirstName: firstName}
}

// Valid reports whether the credential carries a token.
func (c *Credential) Valid() bool {
	return c != nil && c.Token != ""
}

// Authorize sets the bearer Authorization header on an outgoing request.
func (c *Credential) Authorize(req *http.Request) error {
	if !c.Valid() {
		return ErrNoToken
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	return nil
}

// Query returns the token query parameter used by the streaming endpoint.
func (c *Credential) Query() url.Values {
	v := url.Values{}
	if c.Valid() {
		v.Set("token", c.Token)
	}
	return v
}

// DisplayName returns the name used in the welcome greeting, preferring the
// first name over the username.
func (c *Credential) DisplayName() string {
	if c == nil {
		return ""
	}
	if c.FirstName != "" {
		return c.FirstName
	}
	return c.Username
}
