package auth

import "errors"

var (
	// ErrNoToken means the request carried no token at all.
	ErrNoToken = errors.New("auth: no token")

	// ErrTokenInvalid covers bad signatures, wrong algorithms, expiry and
	// payloads that are not exactly one of gym/user.
	ErrTokenInvalid = errors.New("auth: token is not valid")

	// ErrNoSigningKey is returned when an issuer or verifier is built without a key.
	ErrNoSigningKey = errors.New("auth: signing key is empty")
)
