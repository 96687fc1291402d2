package jwt

import (
	"errors"
	"strconv"
	"time"

	"techfest-backend/config"
	"techfest-backend/tools"

	"github.com/golang-jwt/jwt"
)

// ErrMissingSecret means no signing secret is configured. Tokens can be neither issued nor verified.
var ErrMissingSecret = errors.New("jwt: access secret is not configured")

// Claims carries the subject (user id) plus issue and expiry times.
type Claims struct {
	jwt.StandardClaims
}

// UserID returns the subject as a numeric user id.
func (c *Claims) UserID() (uint, bool) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// Issuer signs and verifies HS256 bearer tokens. There is no revocation list:
// a token stays valid until it expires.
type Issuer struct {
	secret []byte
	expire time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, expire time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &Issuer{
		secret: []byte(secret),
		expire: expire,
		now:    time.Now,
	}, nil
}

// CreateToken issues a token for the given user id.
func (i *Issuer) CreateToken(userID uint) (string, error) {
	now := i.now()
	claims := Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(i.expire).Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// ParseToken reports whether token is well formed, correctly signed and unexpired.
// The reason for a rejection is deliberately not returned.
func (i *Issuer) ParseToken(token string) (*Claims, bool) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, false
	}
	if _, ok := claims.UserID(); !ok {
		return nil, false
	}
	return claims, true
}

var issuer *Issuer

// Init builds the process-wide issuer from config and panics when the secret is missing,
// so a misconfigured server never starts serving requests.
func Init() {
	cfg := config.Get().JWT
	i, err := NewIssuer(cfg.AccessSecret, time.Duration(cfg.AccessExpire)*time.Second)
	tools.PanicOnErr(err)
	issuer = i
}

// Default returns the issuer built by Init.
func Default() *Issuer {
	return issuer
}
