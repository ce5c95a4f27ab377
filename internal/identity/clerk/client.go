// Package clerk implements delegated authentication against Clerk: RS256
// session tokens are verified against Clerk's rotating JWKS and verified
// identities are reconciled with the local user store.
package clerk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultAPIURL = "https://api.clerk.com"

// Client speaks to the Clerk backend API (key set and user profiles).
type Client struct {
	apiURL    string
	secretKey string
	http      *http.Client
}

func NewClient(apiURL, secretKey string) *Client {
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	return &Client{
		apiURL:    strings.TrimRight(apiURL, "/"),
		secretKey: secretKey,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

// JWKSURL returns the key-set endpoint.
func (c *Client) JWKSURL() string {
	return c.apiURL + "/v1/jwks"
}

// RequestFactory builds an authorised request for the JWKS endpoint. It has
// the shape keyfunc expects so key-set refreshes carry the API credential.
func (c *Client) RequestFactory(ctx context.Context, rawURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	return req, nil
}

// EmailAddress is one email record on a Clerk profile.
type EmailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

// Profile is the subset of a Clerk user we consume.
type Profile struct {
	ID                    string         `json:"id"`
	Username              string         `json:"username"`
	FirstName             string         `json:"first_name"`
	LastName              string         `json:"last_name"`
	PrimaryEmailAddressID string         `json:"primary_email_address_id"`
	EmailAddresses        []EmailAddress `json:"email_addresses"`
}

// PrimaryEmail resolves the primary-email pointer against the address list.
func (p *Profile) PrimaryEmail() (string, bool) {
	for _, e := range p.EmailAddresses {
		if e.ID == p.PrimaryEmailAddressID && e.EmailAddress != "" {
			return e.EmailAddress, true
		}
	}
	return "", false
}

// User fetches the profile for a Clerk user id.
func (c *Client) User(ctx context.Context, id string) (*Profile, error) {
	req, err := c.RequestFactory(ctx, c.apiURL+"/v1/users/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("clerk: fetch user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("clerk: fetch user: unexpected status %d", resp.StatusCode)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("clerk: decode user: %w", err)
	}
	return &profile, nil
}
