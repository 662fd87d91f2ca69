package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GymRef is the "gym" arm of the token payload.
type GymRef struct {
	ID uint `json:"id"`
}

// UserRef is the "user" arm of the token payload.
type UserRef struct {
	ID    uint `json:"id"`
	GymID uint `json:"gymId"`
}

// Claims is the signed token payload. Exactly one of Gym or User is set.
type Claims struct {
	Gym  *GymRef  `json:"gym,omitempty"`
	User *UserRef `json:"user,omitempty"`
	jwt.RegisteredClaims
}

// Principal converts the payload, rejecting anything but exactly one arm.
func (c *Claims) Principal() (Principal, error) {
	switch {
	case c.Gym != nil && c.User != nil:
		return nil, fmt.Errorf("%w: payload carries both gym and user", ErrTokenInvalid)
	case c.Gym != nil:
		if c.Gym.ID == 0 {
			return nil, fmt.Errorf("%w: missing gym id", ErrTokenInvalid)
		}
		return GymPrincipal{ID: c.Gym.ID}, nil
	case c.User != nil:
		if c.User.ID == 0 || c.User.GymID == 0 {
			return nil, fmt.Errorf("%w: missing user or gym id", ErrTokenInvalid)
		}
		return MemberPrincipal{ID: c.User.ID, GymID: c.User.GymID}, nil
	default:
		return nil, fmt.Errorf("%w: payload carries neither gym nor user", ErrTokenInvalid)
	}
}

func claimsFor(p Principal) (Claims, error) {
	switch p := p.(type) {
	case GymPrincipal:
		return Claims{Gym: &GymRef{ID: p.ID}}, nil
	case MemberPrincipal:
		return Claims{User: &UserRef{ID: p.ID, GymID: p.GymID}}, nil
	default:
		return Claims{}, fmt.Errorf("auth: unsupported principal %T", p)
	}
}

// Issuer mints HS256 tokens with a fixed lifetime.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer fails on an empty secret or a non-positive ttl.
func NewIssuer(secret []byte, ttl time.Duration) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, ErrNoSigningKey
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("auth: token ttl must be positive, got %s", ttl)
	}
	return &Issuer{secret: secret, ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for p and returns it with its expiry.
func (i *Issuer) Issue(p Principal) (string, time.Time, error) {
	claims, err := claimsFor(p)
	if err != nil {
		return "", time.Time{}, err
	}

	now := i.now()
	expires := now.Add(i.ttl)
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(expires)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return signed, expires, nil
}

// Verifier checks signature and expiry and rebuilds the principal.
// It never consults the store.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

func NewVerifier(secret []byte) (*Verifier, error) {
	if len(secret) == 0 {
		return nil, ErrNoSigningKey
	}
	return &Verifier{secret: secret, now: time.Now}, nil
}

// Verify returns ErrNoToken for an empty string and wraps ErrTokenInvalid
// for every other failure.
func (v *Verifier) Verify(tokenString string) (Principal, error) {
	if tokenString == "" {
		return nil, ErrNoToken
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)

	var claims Claims
	token, err := parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims.Principal()
}
