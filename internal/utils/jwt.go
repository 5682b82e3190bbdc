package utils // package utils provides helpers for minting gateway access tokens

import (
    "errors" // sentinel for a missing secret
    "time"   // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// StaffRole matches the role the gateway write guard requires.
const StaffRole = "STAFF"

// ErrNoSecret is returned when a token is requested without a signing secret.
var ErrNoSecret = errors.New("jwt secret is empty")

// AccessToken is a signed JWT along with its expiry.
type AccessToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// NewStaffToken signs an HS256 JWT whose subject is subject and whose role
// claim is STAFF.  The token expires ttl after now.
func NewStaffToken(secret, subject string, ttl time.Duration, now time.Time) (AccessToken, error) {
    if secret == "" {
        return AccessToken{}, ErrNoSecret
    }
    exp := now.UTC().Add(ttl)
    claims := jwt.MapClaims{
        "sub":  subject,
        "role": StaffRole,
        "exp":  exp.Unix(),
        "iat":  now.UTC().Unix(),
    }
    signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}
