package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// userID returns a stable identifier for the caller, used to key
// per-user cache entries and rate-limit buckets. Anonymous requests
// share the "guest" identity. JWTAuth stores the subject claim under
// "user_id"; the claim type depends on how the token was issued.
func userID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	}
	return "guest"
}
