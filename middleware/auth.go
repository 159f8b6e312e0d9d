package middleware

import (
	"strings"

	"bluecollar/models/role"
	"bluecollar/services/auth"
	"bluecollar/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// IsAuthenticated checks for a valid bearer token and, when allowedRoles
// is non-empty, requires the token's role to be one of them. Claims and
// the parsed role are attached to the request context.
func IsAuthenticated(allowedRoles []role.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		var token string

		if authHeader != "" {
			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
					Message: "Invalid authorization header format",
					Status:  fiber.StatusUnauthorized,
				})
			}
			token = tokenParts[1]
		} else {
			// Cookie fallback for browser clients.
			token = c.Cookies("access")
			if token == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
					Message: "Authorization token missing",
					Status:  fiber.StatusUnauthorized,
				})
			}
		}

		claims, err := auth.VerifyToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Session expired. Login again.",
				Status:  fiber.StatusUnauthorized,
			})
		}

		callerRole, err := auth.RoleFromClaims(claims)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Invalid role in token",
				Status:  fiber.StatusUnauthorized,
			})
		}

		if len(allowedRoles) > 0 && !roleAllowed(callerRole, allowedRoles) {
			return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
				Message: "Insufficient permissions",
				Status:  fiber.StatusForbidden,
			})
		}

		c.Locals("user", claims)
		c.Locals("role", callerRole)
		c.Locals("token", token)

		return c.Next()
	}
}

func roleAllowed(r role.Role, allowed []role.Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// RequireRoles creates a middleware restricted to the given roles.
func RequireRoles(roles ...role.Role) fiber.Handler {
	return IsAuthenticated(roles)
}

// RequireAuthentication only requires a valid token, any role.
func RequireAuthentication() fiber.Handler {
	return IsAuthenticated(nil)
}

// RequireAccountManager restricts a route to roles that may administer
// other accounts.
func RequireAccountManager() fiber.Handler {
	var allowed []role.Role
	for _, r := range role.AllRoles() {
		if r.CanManageAccounts() {
			allowed = append(allowed, r)
		}
	}
	return IsAuthenticated(allowed)
}

// RequireOrderCloser restricts a route to roles that may close booking
// orders.
func RequireOrderCloser() fiber.Handler {
	var allowed []role.Role
	for _, r := range role.AllRoles() {
		if r.CanCloseOrder() {
			allowed = append(allowed, r)
		}
	}
	return IsAuthenticated(allowed)
}

// ClaimsFromCtx returns the verified claims attached by IsAuthenticated.
func ClaimsFromCtx(c *fiber.Ctx) (jwt.MapClaims, bool) {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	return claims, ok
}

// UsernameFromCtx returns the caller's username claim.
func UsernameFromCtx(c *fiber.Ctx) (string, bool) {
	claims, ok := ClaimsFromCtx(c)
	if !ok {
		return "", false
	}
	username, ok := claims["username"].(string)
	return username, ok && username != ""
}

// RoleFromCtx returns the caller's parsed role.
func RoleFromCtx(c *fiber.Ctx) (role.Role, bool) {
	r, ok := c.Locals("role").(role.Role)
	return r, ok
}

// TokenFromCtx returns the raw bearer token for session lookups.
func TokenFromCtx(c *fiber.Ctx) (string, bool) {
	token, ok := c.Locals("token").(string)
	return token, ok && token != ""
}
