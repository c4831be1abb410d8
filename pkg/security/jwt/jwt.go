package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin grants access to every résumé.
const RoleAdmin = "admin"

// Claims включает стандартные поля, роль и флаг администратора.
// Tokens are minted by the external identity provider.
type Claims struct {
	jwt.RegisteredClaims
	Role    string `json:"role,omitempty"`
	IsAdmin bool   `json:"is_admin,omitempty"`
}

// Admin reports whether the token carries administrator rights.
func (c *Claims) Admin() bool { return c.IsAdmin || c.Role == RoleAdmin }

// Verifier checks HS256 tokens against the shared secret, issuer and audience.
type Verifier struct {
	secret   []byte
	issuer   string
	audience string
}

func NewVerifier(secret, issuer, audience string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer, audience: audience}
}

func (v *Verifier) Verify(tokenStr string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

// Generator mints tokens shaped like the identity provider's. It backs
// tests and the local development command.
type Generator struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

func NewGenerator(secret, issuer, audience string, ttl time.Duration) *Generator {
	return &Generator{secret: []byte(secret), issuer: issuer, audience: audience, ttl: ttl}
}

func (g *Generator) Generate(subject, role string) (string, error) {
	if subject == "" {
		return "", errors.New("subject is required")
	}
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
		Role: role,
	}
	if g.audience != "" {
		claims.Audience = jwt.ClaimStrings{g.audience}
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}
