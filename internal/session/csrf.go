package session

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"

	"github.com/mr-tron/base58"

	"canteen-web/internal/store"
)

const (
	// CSRFField is the hidden form field carrying the token
	CSRFField = "_csrf"

	csrfBytes = 32
)

// NewCSRFToken returns a random base58 token
func NewCSRFToken() (string, error) {
	b := make([]byte, csrfBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base58.Encode(b), nil
}

// EnsureCSRF returns the token of the session, issuing one on first use
func EnsureCSRF(ctx context.Context, st *store.Store) (string, error) {
	token, err := st.CSRF(ctx)
	if err != nil {
		return "", err
	}
	if token != "" {
		return token, nil
	}
	if token, err = NewCSRFToken(); err != nil {
		return "", err
	}
	if err := st.SetCSRF(ctx, token); err != nil {
		return "", err
	}
	return token, nil
}

// VerifyCSRF reports whether got matches the token of the session
func VerifyCSRF(ctx context.Context, st *store.Store, got string) bool {
	want, err := st.CSRF(ctx)
	if err != nil || want == "" || got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}
