// Package token encodes and decodes the signed bearer tokens of the todo
// service.
//
// Two kinds of token exist, distinguished by lifetime and claim set: access
// tokens carry the subject plus role and userId claims and authorize API
// calls; refresh tokens carry only the subject and are used solely to mint
// new access tokens. Both are signed HS256 with a single process-wide
// secret loaded at startup. Validation is a pure computation over the token
// bytes and the secret.
package token

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/mytodoapp/todo/internal/apperrors"
	"github.com/mytodoapp/todo/internal/domain"
)

// AccessClaims is the payload of an access token. Refresh tokens reuse the
// same struct with Role and UserID left zero.
type AccessClaims struct {
	jwt.RegisteredClaims
	Role   string `json:"role,omitempty"`
	UserID uint   `json:"userId,omitempty"`
}

// Codec issues and validates signed bearer tokens.
type Codec struct {
	cfg Config
}

// NewCodec creates a Codec from configuration.
func NewCodec(cfg *Config) (*Codec, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Codec{cfg: *cfg}, nil
}

// IssueAccess creates a signed access token for the subject carrying the
// role and userId claims. IssuedAt is now, ExpiresAt is now + access TTL.
func (c *Codec) IssueAccess(subject string, role domain.Role, userID uint) (string, error) {
	now := time.Now()
	claims := &AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    c.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.cfg.AccessTokenTTL)),
		},
		Role:   string(role),
		UserID: userID,
	}
	return c.sign(claims)
}

// IssueRefresh creates a signed refresh token carrying only the subject.
func (c *Codec) IssueRefresh(subject string) (string, error) {
	now := time.Now()
	claims := &AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    c.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.cfg.RefreshTokenTTL)),
		},
	}
	return c.sign(claims)
}

// Parse validates the token signature and expiry and returns the decoded
// claims.
func (c *Codec) Parse(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, c.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, apperrors.InvalidToken("").WithCause(err)
	}
	if !parsed.Valid {
		return nil, apperrors.InvalidToken("")
	}
	return claims, nil
}

// ExtractSubject returns the subject of a token whose signature verifies,
// independent of expiry. It fails with an INVALID_TOKEN error when the
// token is malformed or the signature does not verify.
func (c *Codec) ExtractSubject(tokenString string) (string, error) {
	claims := &AccessClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, c.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation())
	if err != nil || !parsed.Valid {
		return "", apperrors.InvalidToken("").WithCause(err)
	}
	if claims.Subject == "" {
		return "", apperrors.InvalidToken("token has no subject")
	}
	return claims.Subject, nil
}

// IsValid reports whether the token's signature verifies, it has not
// expired, and its subject equals expectedSubject. All three checks must
// pass.
func (c *Codec) IsValid(tokenString, expectedSubject string) bool {
	claims, err := c.Parse(tokenString)
	if err != nil {
		return false
	}
	return claims.Subject == expectedSubject
}

// AccessTTLMillis exposes the configured access-token lifetime for
// response payloads.
func (c *Codec) AccessTTLMillis() int64 {
	return c.cfg.AccessTokenTTL.Milliseconds()
}

func (c *Codec) sign(claims *AccessClaims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(c.cfg.Secret))
	if err != nil {
		return "", apperrors.Internal(err)
	}
	return signed, nil
}

func (c *Codec) keyFunc(t *jwt.Token) (interface{}, error) {
	if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, errors.New("token: unexpected signing method: " + t.Method.Alg())
	}
	return []byte(c.cfg.Secret), nil
}
