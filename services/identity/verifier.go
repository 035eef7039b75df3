package identity

import (
	"context"
	"errors"
	"fmt"

	"brokerbook/models"
	"brokerbook/utils"

	"firebase.google.com/go/v4/auth"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Verifier turns a bearer token into the caller's identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (*models.Identity, error)
}

// IDTokenVerifier is the part of the firebase auth client we use.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseVerifier checks Firebase ID tokens. The role comes from the
// "role" custom claim and defaults to client.
type FirebaseVerifier struct {
	Auth IDTokenVerifier
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (*models.Identity, error) {
	t, err := v.Auth.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	id := &models.Identity{UID: t.UID, Role: models.RoleClient}
	if email, ok := t.Claims["email"].(string); ok {
		id.Email = email
	}
	if name, ok := t.Claims["name"].(string); ok {
		id.Name = name
	}
	if role, ok := t.Claims["role"].(string); ok && validRole(role) {
		id.Role = role
	}
	return id, nil
}

// JWTVerifier checks locally signed HS256 tokens.
type JWTVerifier struct {
	Secret []byte
}

func (v *JWTVerifier) Verify(_ context.Context, token string) (*models.Identity, error) {
	c, err := utils.ParseToken(v.Secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	role := c.Role
	if !validRole(role) {
		role = models.RoleClient
	}
	return &models.Identity{UID: c.Subject, Email: c.Email, Name: c.Name, Role: role}, nil
}

func validRole(r string) bool {
	return r == models.RoleBroker || r == models.RoleClient
}
