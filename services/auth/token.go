package auth

import (
	"fmt"
	"os"
	"time"

	"bluecollar/models/role"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL matches the access-cookie lifetime.
const TokenTTL = 8 * time.Hour

func secret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// IssueToken signs an HS256 token carrying the account identity used by
// the middleware and controllers.
func IssueToken(publicID, username, email string, r role.Role, active bool) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      publicID,
		"username": username,
		"email":    email,
		"role":     r.String(),
		"active":   active,
		"iat":      now.Unix(),
		"exp":      now.Add(TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret())
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates a bearer token and returns its claims.
func VerifyToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// RoleFromClaims extracts and validates the role claim.
func RoleFromClaims(claims jwt.MapClaims) (role.Role, error) {
	raw, ok := claims["role"].(string)
	if !ok {
		return "", fmt.Errorf("role claim missing")
	}
	return role.Parse(raw)
}
