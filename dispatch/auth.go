package dispatch

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const authorizationHeader = "Authorization"

// AuthType represents the type of authentication.
type AuthType int

const (
	// AuthTypeToken is the "Token <key>" scheme used by the EvalAI API.
	AuthTypeToken AuthType = iota
	AuthTypeBearer
	AuthTypeBasic
)

func (a AuthType) String() string {
	switch a {
	case AuthTypeToken:
		return "Token"
	case AuthTypeBearer:
		return "Bearer"
	case AuthTypeBasic:
		return "Basic"
	default:
		return "Unknown"
	}
}

// authorizationValue renders the header value for a token; an empty token
// yields "".
func authorizationValue(scheme, token string) string {
	if token == "" {
		return ""
	}
	if scheme == "" {
		return token
	}
	return scheme + " " + token
}

// SetToken sets "Authorization: <scheme> <token>" on this request.
func (r *Request) SetToken(scheme, token string) error {
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}

	if err := r.SetHeader(authorizationHeader, authorizationValue(scheme, token)); err != nil {
		return fmt.Errorf("failed to set authorization header: %w", err)
	}
	return nil
}

// SetBearerToken sets Bearer Token Authentication for this request.
func (r *Request) SetBearerToken(token string) error {
	return r.SetToken(AuthTypeBearer.String(), token)
}

// SetBasicAuth sets HTTP Basic Authentication for this request.
func (r *Request) SetBasicAuth(username, password string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if err := r.SetHeader(authorizationHeader, encodeBasicAuth(username, password)); err != nil {
		return fmt.Errorf("failed to set authorization header: %w", err)
	}
	return nil
}

// ClearAuth removes the Authorization header from this request.
func (r *Request) ClearAuth() {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.headers, authorizationHeader)
}

// GetAuthHeader returns the current Authorization header value.
func (r *Request) GetAuthHeader() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.headers[authorizationHeader]
}

func encodeBasicAuth(username, password string) string {
	auth := username + ":" + password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(auth))
}

// ParseToken splits an Authorization header value into scheme and token.
func ParseToken(header string) (scheme, token string, err error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || scheme == "" || token == "" {
		return "", "", fmt.Errorf("invalid authorization header")
	}
	return scheme, strings.TrimSpace(token), nil
}
