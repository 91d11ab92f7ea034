package domain

import "context"

// SessionStore maps opaque tokens to user identities with a fixed TTL.
// Expiry is enforced by the store, not polled by callers.
type SessionStore interface {
	// Create issues a fresh token for the user.
	Create(ctx context.Context, userID string) (string, error)

	// Resolve looks a token up. Expired and unknown tokens report
	// ok=false; callers treat that as authentication failure.
	Resolve(ctx context.Context, token string) (userID string, ok bool, err error)

	// Revoke deletes a token. Revoking an absent token is a no-op.
	Revoke(ctx context.Context, token string) error
}
