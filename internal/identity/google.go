package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// GoogleVerifier validates Google ID tokens against the tokeninfo endpoint
// and checks the audience matches our client ID.
type GoogleVerifier struct {
	clientID string
	client   *http.Client
	endpoint string
}

// NewGoogleVerifier builds a verifier for the configured OAuth client ID.
func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{
		clientID: clientID,
		client:   &http.Client{Timeout: 10 * time.Second},
		endpoint: googleTokenInfoURL,
	}
}

type tokenInfoResponse struct {
	Subject       string `json:"sub"`
	Audience      string `json:"aud"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// Verify checks the ID token with Google and returns the identity claim.
func (v *GoogleVerifier) Verify(ctx context.Context, credential string) (*Claim, error) {
	endpoint := v.endpoint + "?id_token=" + url.QueryEscape(credential)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: tokeninfo status %d", ErrVerificationFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var info tokenInfoResponse
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("%w: malformed tokeninfo response", ErrVerificationFailed)
	}

	if v.clientID != "" && info.Audience != v.clientID {
		return nil, fmt.Errorf("%w: audience mismatch", ErrVerificationFailed)
	}
	if info.Email == "" || info.EmailVerified != "true" {
		return nil, fmt.Errorf("%w: email missing or unverified", ErrVerificationFailed)
	}

	return &Claim{
		Subject: info.Subject,
		Name:    info.Name,
		Email:   info.Email,
		Picture: info.Picture,
	}, nil
}
