/*
Package auth establishes the authenticated identity the accounting
engine consumes: which employee is acting, and with which role.

PURPOSE:
  Token-based authentication for the cashier and admin interfaces.
  Employees sign in with their employee number and password; the server
  issues a signed JWT carrying id, name, number, and role. Handlers read
  the verified identity from the request context.

SCOPE:
  The engine itself only consumes (employee id, role); everything here
  is the boundary implementation: bcrypt credentials, HS256 tokens, and
  the chi middleware that enforces them.

SEE ALSO:
  - middleware.go: RequireAuth / RequireAdmin
  - password.go: bcrypt hashing
  - api/handlers.go: Login issues tokens from here
*/
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ampos/pos-engine/pos"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Identity is the verified acting employee.
type Identity struct {
	EmployeeID     int64
	Name           string
	EmployeeNumber string
	Role           pos.Role
}

// IsAdmin reports whether the identity may perform admin operations.
func (id Identity) IsAdmin() bool { return id.Role == pos.RoleAdmin }

// Claims are the JWT claims carried by issued tokens.
type Claims struct {
	EmployeeID     int64  `json:"employee_id"`
	Name           string `json:"name"`
	EmployeeNumber string `json:"employee_number"`
	Role           string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a manager with the given signing secret.
// A zero ttl defaults to 24 hours.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the employee.
func (m *TokenManager) Issue(e pos.Employee) (string, error) {
	now := time.Now()
	claims := Claims{
		EmployeeID:     e.ID,
		Name:           e.Name,
		EmployeeNumber: e.EmployeeNumber,
		Role:           string(e.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   e.EmployeeNumber,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses and validates a token, returning the identity it carries.
func (m *TokenManager) Verify(tokenString string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return &Identity{
		EmployeeID:     claims.EmployeeID,
		Name:           claims.Name,
		EmployeeNumber: claims.EmployeeNumber,
		Role:           pos.Role(claims.Role),
	}, nil
}
