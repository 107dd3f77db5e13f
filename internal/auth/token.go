// Package auth covers the access-token and password primitives of the API.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token fails signature or claim checks.
var ErrInvalidToken = errors.New("invalid access token")

// AccessClaims is the payload of an access token. The subject is the account
// id; the employee code rides along so clients can show it without an extra
// request. Authorization decisions always re-check the database, the claims
// only identify the account.
type AccessClaims struct {
	IsStaff      bool   `json:"is_staff"`
	EmployeeCode string `json:"employee_id,omitempty"`
	jwt.RegisteredClaims
}

// AccountID returns the numeric account id from the token subject.
func (c *AccessClaims) AccountID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, c.Subject)
	}

	return id, nil
}

// GenerateAccessToken mints a signed HS256 token for an account.
func GenerateAccessToken(accountID int64, isStaff bool, employeeCode, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		IsStaff:      isStaff,
		EmployeeCode: employeeCode,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(accountID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return signed, nil
}

// ParseAccessToken verifies the signature and validity window of a token and
// returns its claims.
func ParseAccessToken(tokenString, secret string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(_ *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
