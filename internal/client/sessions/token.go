// Package sessions encodes the durable session pointer as a compact token.
//
// The pointer is serialized as an HS256 JWT signed with a per-device secret
// kept in the metadata store. The signature buys nothing against a
// determined local attacker; it exists so that a corrupted or hand-edited
// value fails decoding cleanly and degrades to "no session" instead of
// producing a half-parsed record.
package sessions

import (
	"time"

	"github.com/dmitrijs2005/lifeboard/internal/client/models"
	"github.com/dmitrijs2005/lifeboard/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the canonical session pointer fields. IssuedAt maps to the
// registered "iat" claim.
type Claims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
}

// Codec is the single encode/decode path for session pointers.
type Codec struct {
	secret []byte
}

func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret}
}

// Encode signs the pointer into its durable string form.
func (c *Codec) Encode(p models.SessionPointer) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(p.IssuedAt),
		},
		Email:    p.Email,
		Verified: p.Verified,
	})
	return token.SignedString(c.secret)
}

// Decode parses and verifies a stored token. Any parse or signature failure
// is reported as common.ErrSessionInvalid; callers treat that as "no
// session" and delete the stored value.
func (c *Codec) Decode(tokenString string) (models.SessionPointer, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrSessionInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		return models.SessionPointer{}, common.ErrSessionInvalid
	}
	if !token.Valid {
		return models.SessionPointer{}, common.ErrSessionInvalid
	}

	issuedAt := time.Time{}
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}

	return models.SessionPointer{
		Email:    claims.Email,
		Verified: claims.Verified,
		IssuedAt: issuedAt,
	}, nil
}
