package middleware

import "github.com/labstack/echo/v4"

// subject returns the token subject stored by JWTAuth, or "anon" when the
// request was not authenticated.  Reads are never authenticated, so rate
// limit keys built from it group all readers together.
func subject(c echo.Context) string {
	if s, ok := c.Get("subject").(string); ok && s != "" {
		return s
	}
	return "anon"
}
