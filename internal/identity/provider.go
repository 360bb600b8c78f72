// Package identity wraps the hosted identity provider's REST surface:
// account creation, password and federated sign-in, profile updates, and
// refresh-token exchange. It knows nothing about the marketplace API.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Nafiz001/booknest-client/internal/logger"

	"go.uber.org/zap"
)

const defaultTokenURL = "https://securetoken.googleapis.com/v1"

// Credential is one issued session: a short-lived bearer token plus the
// refresh token used to renew it.
type Credential struct {
	SubjectID    string
	IDToken      string
	RefreshToken string
	ExpiresAt    time.Time
}

// Error carries the provider's own error code (e.g. EMAIL_EXISTS,
// INVALID_PASSWORD) so callers can surface it verbatim.
type Error struct {
	Code string
}

func (e *Error) Error() string {
	return fmt.Sprintf("identity provider: %s", e.Code)
}

type Provider struct {
	baseURL    string
	tokenURL   string
	apiKey     string
	httpClient *http.Client
}

func NewProvider(baseURL, apiKey string) *Provider {
	if apiKey == "" {
		logger.L().Warn("identity provider API key is empty")
	}
	return &Provider{
		baseURL:  strings.TrimRight(baseURL, "/"),
		tokenURL: defaultTokenURL,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SetTokenURL overrides the refresh-token endpoint base.
func (p *Provider) SetTokenURL(u string) {
	p.tokenURL = strings.TrimRight(u, "/")
}

// SignUp creates a new provider identity.
func (p *Provider) SignUp(ctx context.Context, email, password string) (*Credential, error) {
	return p.exchange(ctx, "accounts:signUp", map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
}

// SignInWithPassword authenticates an existing email/password identity.
func (p *Provider) SignInWithPassword(ctx context.Context, email, password string) (*Credential, error) {
	return p.exchange(ctx, "accounts:signInWithPassword", map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
}

// SignInWithIDP exchanges a federated provider's token (e.g. a Google ID
// token obtained out of band) for a session with this provider.
func (p *Provider) SignInWithIDP(ctx context.Context, providerID, providerToken string) (*Credential, error) {
	postBody := url.Values{}
	postBody.Set("id_token", providerToken)
	postBody.Set("providerId", providerID)

	return p.exchange(ctx, "accounts:signInWithIdp", map[string]interface{}{
		"postBody":            postBody.Encode(),
		"requestUri":          "http://localhost",
		"returnSecureToken":   true,
		"returnIdpCredential": false,
	})
}

// UpdateProfile sets display name and photo on the identity itself.
func (p *Provider) UpdateProfile(ctx context.Context, idToken, displayName, photoURL string) error {
	_, err := p.exchange(ctx, "accounts:update", map[string]interface{}{
		"idToken":           idToken,
		"displayName":       displayName,
		"photoUrl":          photoURL,
		"returnSecureToken": false,
	})
	return err
}

// Refresh exchanges a refresh token for a fresh credential.
func (p *Provider) Refresh(ctx context.Context, refreshToken string) (*Credential, error) {
	log := logger.FromCtx(ctx).With(zap.String("provider_call", "token"))

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	endpoint := fmt.Sprintf("%s/token?key=%s", p.tokenURL, url.QueryEscape(p.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		log.Error("refresh request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, providerError(bodyBytes, resp.StatusCode)
	}

	var res struct {
		UserID       string `json:"user_id"`
		IDToken      string `json:"id_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    string `json:"expires_in"`
	}
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("failed decoding refresh response", zap.Error(err))
		return nil, err
	}

	return p.credential(res.UserID, res.IDToken, res.RefreshToken, res.ExpiresIn), nil
}

// exchange performs one accounts:* call and decodes the common token shape.
func (p *Provider) exchange(ctx context.Context, action string, body map[string]interface{}) (*Credential, error) {
	log := logger.FromCtx(ctx).With(zap.String("provider_call", action))

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s?key=%s", p.baseURL, action, url.QueryEscape(p.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		log.Error("provider request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Warn("provider returned non-success status",
			zap.Int("status", resp.StatusCode),
		)
		return nil, providerError(bodyBytes, resp.StatusCode)
	}

	var res struct {
		LocalID      string `json:"localId"`
		IDToken      string `json:"idToken"`
		RefreshToken string `json:"refreshToken"`
		ExpiresIn    string `json:"expiresIn"`
	}
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("failed decoding provider response", zap.Error(err))
		return nil, err
	}

	return p.credential(res.LocalID, res.IDToken, res.RefreshToken, res.ExpiresIn), nil
}

func (p *Provider) credential(subject, idToken, refreshToken, expiresIn string) *Credential {
	cred := &Credential{
		SubjectID:    subject,
		IDToken:      idToken,
		RefreshToken: refreshToken,
	}

	// The signed exp claim is authoritative; expiresIn is the fallback.
	if exp, err := TokenExpiry(idToken); err == nil {
		cred.ExpiresAt = exp
	} else if secs, err := strconv.Atoi(expiresIn); err == nil {
		cred.ExpiresAt = time.Now().Add(time.Duration(secs) * time.Second)
	}

	return cred
}

func providerError(body []byte, status int) error {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Message != "" {
		return &Error{Code: payload.Error.Message}
	}
	return &Error{Code: http.StatusText(status)}
}
