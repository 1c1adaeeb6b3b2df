// Package auth resolves the owner of a request from a JWT.
//
// Tokens are signed with HS256 and carry the owner ID in the subject claim.
// They are issued by the identity provider sharing the secret or with the
// token command.
package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/fintrack/backend/internal/httputil"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	ownerKey   = "fintrack-owner"
	CookieName = "fintrack_token"
	DefaultTTL = 24 * time.Hour
)

var (
	ErrTokenMissing = errors.New("authentication is required, send a token as Bearer authorization header")
	ErrTokenInvalid = errors.New("the token is invalid or expired")
)

// NewToken returns a signed token for the owner, valid for ttl.
func NewToken(secret string, owner uuid.UUID, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   owner.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken verifies the token and returns the owner it was issued for.
func ParseToken(secret, token string) (uuid.UUID, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return uuid.Nil, err
	}

	owner, err := uuid.Parse(claims.Subject)
	if err != nil || owner == uuid.Nil {
		return uuid.Nil, ErrTokenInvalid
	}

	return owner, nil
}

// tokenFrom reads the token from the authorization header, the
// token query parameter or the token cookie, in this order.
func tokenFrom(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}

	if token := c.Query("token"); token != "" {
		return token
	}

	if cookie, err := c.Cookie(CookieName); err == nil {
		return cookie
	}

	return ""
}

// Middleware rejects requests without a valid token and
// stores the owner in the context.
func Middleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFrom(c)
		if token == "" {
			httputil.NewError(c, http.StatusUnauthorized, ErrTokenMissing)
			c.Abort()
			return
		}

		owner, err := ParseToken(secret, token)
		if err != nil {
			log.Debug().Str("request-id", requestid.Get(c)).Err(err).Msg("rejected token")
			httputil.NewError(c, http.StatusUnauthorized, ErrTokenInvalid)
			c.Abort()
			return
		}

		c.Set(ownerKey, owner)
		c.Next()
	}
}

// Owner returns the owner of the request. It is uuid.Nil if
// the request did not pass the Middleware.
func Owner(c *gin.Context) uuid.UUID {
	owner, ok := c.Get(ownerKey)
	if !ok {
		return uuid.Nil
	}

	id, _ := owner.(uuid.UUID)
	return id
}
