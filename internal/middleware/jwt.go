package middleware // middleware provides shared request processing for the gateway

import (
	"net/http" // HTTP status codes for responses
	"strings"  // prefix checking and trimming of the Authorization header

	"github.com/golang-jwt/jwt/v5" // JWT parsing and validation
	"github.com/labstack/echo/v4"  // echo middleware signatures

	"github.com/iliyamo/bowling-center/internal/utils"
)

// StaffRole is the role claim carried by tokens minted with `bowling token`.
const StaffRole = utils.StaffRole

// JWTAuth returns an Echo middleware that validates an HS256 Bearer token
// and stores its "sub" and "role" claims in the context under "subject"
// and "role".
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Only HMAC is accepted; anything else is rejected before the
			// signature is checked.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid token"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid claims"})
			}

			sub, _ := claims.GetSubject()
			c.Set("subject", sub)
			c.Set("role", claims["role"])
			return next(c)
		}
	}
}

// WriteGuard protects POST, PUT, PATCH and DELETE with JWTAuth plus the
// staff role.  Reads pass through untouched.  An empty secret disables the
// guard entirely.
func WriteGuard(secret string) echo.MiddlewareFunc {
	if secret == "" {
		return passThrough
	}
	auth := JWTAuth(secret)
	role := RequireRole(StaffRole)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		guarded := auth(role(next))
		return func(c echo.Context) error {
			switch c.Request().Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
				return guarded(c)
			}
			return next(c)
		}
	}
}

func passThrough(next echo.HandlerFunc) echo.HandlerFunc { return next }
