// Package auth issues and verifies the signed bearer tokens returned by a
// successful login. Tokens are self-contained: validity is entirely a
// function of the HMAC signature and the embedded timestamps.
package auth

import (
	"errors"
	"math"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sbperudesarrollo/authbase/internal/common"
	"github.com/sbperudesarrollo/authbase/internal/server/models"
)

// clockSkewLeeway is applied to nbf/exp checks during verification.
const clockSkewLeeway = 30 * time.Second

// Claims is the claim set embedded in every issued token: the registered
// claims (iss, aud, jti, iat, nbf, exp) plus the profile fields carried over
// from the credential record.
type Claims struct {
	jwt.RegisteredClaims
	UserID    int64  `json:"user-id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	Email     string `json:"email"`
	RoleID    int64  `json:"role_id"`
	DegreeID  *int64 `json:"degree_id,omitempty"`
	Cip       *int64 `json:"cip,omitempty"`
}

// TokenResult bundles a signed token with its lifetime in whole seconds.
type TokenResult struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}

// Issuer signs and verifies tokens with a symmetric key (HS256). Issuer and
// audience are fixed at construction and embedded in every signature.
type Issuer struct {
	secretKey []byte
	issuer    string
	audience  string
	validity  time.Duration
}

// NewIssuer creates an Issuer. The validity duration must already be
// normalized by configuration (non-positive values default to 60 minutes
// there, not here).
func NewIssuer(secretKey []byte, issuer, audience string, validity time.Duration) *Issuer {
	return &Issuer{
		secretKey: secretKey,
		issuer:    issuer,
		audience:  audience,
		validity:  validity,
	}
}

// Issue builds a fresh token for the given user. Every call produces a new
// jti, so two logins by the same user never yield identical tokens.
func (i *Issuer) Issue(user *models.User) (*TokenResult, error) {
	now := time.Now()
	expires := now.Add(i.validity)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		UserID:    user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		Email:     user.Email,
		RoleID:    user.RoleID,
		DegreeID:  user.DegreeID,
		Cip:       user.Cip,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secretKey)
	if err != nil {
		return nil, err
	}

	return &TokenResult{
		Token:     signed,
		ExpiresIn: int(math.Round(expires.Sub(now).Seconds())),
	}, nil
}

// Verify parses a token and validates its signature, issuer, audience, and
// time window against the issuer's configuration. Expired tokens are reported
// as common.ErrTokenExpired, everything else as common.ErrInvalidToken.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return i.secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
		jwt.WithLeeway(clockSkewLeeway),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
