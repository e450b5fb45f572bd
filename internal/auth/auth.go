// Package auth supplies the customer identity for checkout: JWT bearer
// tokens parsed into claims, exposed to handlers through the request context.
package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

// Claims is the customer identity carried by an access token.
type Claims struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	jwt.RegisteredClaims
}

type ctxKey struct{}

// ErrUnauthenticated is returned when a request carries no valid identity.
var ErrUnauthenticated = errors.New("unauthenticated")

// Verifier parses and validates access tokens.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier with the given HS256 signing secret.
func NewVerifier(secret []byte) *Verifier {
	return &Verifier{secret: secret}
}

// Parse validates a raw token string and returns its claims.
func (v *Verifier) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrUnauthenticated
	}
	return claims, nil
}

// Issue signs a token for the given customer. Used by tests and tooling; the
// identity provider that normally issues tokens lives outside this service.
func (v *Verifier) Issue(userID, name, phoneNumber string, ttl time.Duration) (string, error) {
	claims := Claims{
		Name:  name,
		Phone: phoneNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// bearerToken extracts the raw token from the Authorization header, or empty.
func bearerToken(r *http.Request) string {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return ""
	}
	return token
}

// SubjectFromRequest returns the token subject when the request carries a
// valid bearer token, or empty. For routes where identity is optional.
func (v *Verifier) SubjectFromRequest(r *http.Request) string {
	token := bearerToken(r)
	if token == "" {
		return ""
	}
	claims, err := v.Parse(token)
	if err != nil {
		return ""
	}
	return claims.Subject
}

// Authenticate wraps a handler, rejecting requests without a valid bearer
// token and storing the claims in the request context. Rejections use the
// same response envelope as the rest of the API.
func (v *Verifier) Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		token := bearerToken(r)
		if token == "" {
			unauthorized(w)
			return
		}
		claims, err := v.Parse(token)
		if err != nil {
			unauthorized(w)
			return
		}
		next(w, r.WithContext(WithClaims(r.Context(), claims)), ps)
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"success":false,"message":"Unauthorized"}` + "\n"))
}

// WithClaims returns a context carrying the given identity.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, claims)
}

// FromContext extracts the authenticated identity, if any.
func FromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ctxKey{}).(*Claims)
	return claims, ok
}

// UserID returns the authenticated customer id, or empty.
func UserID(ctx context.Context) string {
	if claims, ok := FromContext(ctx); ok {
		return claims.Subject
	}
	return ""
}
