// Package identity verifies bearer credentials against Firebase Authentication
// and resolves them to a stable user ID. Verification always consults the
// revocation state; results are never cached, every request re-verifies.
package identity

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
)

// ErrTokenRevoked is returned when the ID token has been explicitly revoked.
var ErrTokenRevoked = errors.New("token has been revoked")

// ErrInvalidToken is returned for tokens that fail verification.
var ErrInvalidToken = errors.New("invalid authentication token")

// Verifier checks a bearer ID token and returns the subject identifier.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (string, error)
}

// FirebaseVerifier implements Verifier on the Firebase Admin SDK.
type FirebaseVerifier struct {
	client *auth.Client
}

// NewFirebaseVerifier initializes the Firebase app and its auth client.
func NewFirebaseVerifier(ctx context.Context, projectID string) (*FirebaseVerifier, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase auth client: %w", err)
	}
	return &FirebaseVerifier{client: client}, nil
}

// Verify validates the token signature and revocation state and returns the
// user's UID.
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	token, err := v.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		if auth.IsIDTokenRevoked(err) {
			return "", ErrTokenRevoked
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return token.UID, nil
}
