package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/daypulse-backend/internal/domain"
)

// userChecker reports whether an account row exists for an id.
type userChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Validator combines signature validation with an account-existence check.
// A token whose subject has no user row is treated as invalid: the identity
// service may issue tokens for accounts this backend has not provisioned yet.
type Validator struct {
	jwt   *JWTManager
	users userChecker
}

// NewValidator creates a Validator.
func NewValidator(jwt *JWTManager, users userChecker) *Validator {
	return &Validator{jwt: jwt, users: users}
}

// ValidateToken parses and verifies the token, then checks that the subject
// account exists.
func (v *Validator) ValidateToken(ctx context.Context, tokenString string) (uuid.UUID, error) {
	userID, err := v.jwt.ValidateToken(ctx, tokenString)
	if err != nil {
		return uuid.Nil, err
	}

	exists, err := v.users.Exists(ctx, userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("check user %s: %w", userID, err)
	}
	if !exists {
		return uuid.Nil, fmt.Errorf("user %s: %w", userID, domain.ErrUnauthorized)
	}

	return userID, nil
}
