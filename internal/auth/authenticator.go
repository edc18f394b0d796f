package auth

import (
	"context"
	"errors"

	"github.com/rsinnovation/hub-api/internal/models"
	"github.com/rsinnovation/hub-api/internal/storage"
)

// ErrUnauthenticated covers every failure to resolve a bearer token to a live
// account: missing/invalid/expired token, unknown user, or deactivated user.
// Callers get one error kind so the response never reveals which check failed.
var ErrUnauthenticated = errors.New("unauthenticated")

// Authenticator resolves bearer tokens to live user records.
type Authenticator struct {
	tokens *TokenManager
	users  storage.UserStore
}

// NewAuthenticator constructs an Authenticator.
func NewAuthenticator(tokens *TokenManager, users storage.UserStore) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// Resolve verifies the token and loads the user it names from the store.
// The live record wins over the token claims: a user deactivated (or deleted,
// or re-roled) after issuance is rejected (or re-evaluated) here even though
// the token itself still verifies. Read-only, safe for concurrent use.
func (a *Authenticator) Resolve(ctx context.Context, token string) (models.User, error) {
	claims, err := a.tokens.Verify(token)
	if err != nil {
		return models.User{}, ErrUnauthenticated
	}

	user, err := a.users.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, ErrUnauthenticated
		}
		return models.User{}, err
	}
	if !user.IsActive {
		return models.User{}, ErrUnauthenticated
	}
	return user, nil
}
