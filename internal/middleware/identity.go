package middleware

// identity.go defines helper functions shared across middleware files. It
// provides a userID extraction function used to scope cache and rate-limit
// keys per user. JWTAuth stores the token's subject under "user_id"; the
// claim arrives as float64 or string depending on how the token was
// encoded. When no user is authenticated, "guest" is returned.

import (
    "strconv"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"
)

// userID extracts a user identifier from the Echo context. It returns
// "guest" when no user is authenticated or the claims are missing.
func userID(c echo.Context) string {
    switch t := c.Get("user_id").(type) {
    case string:
        if t != "" {
            return t
        }
    case float64:
        return strconv.FormatUint(uint64(t), 10)
    case uint64:
        return strconv.FormatUint(t, 10)
    case int64:
        return strconv.FormatInt(t, 10)
    case int:
        return strconv.Itoa(t)
    }
    // Fall back to a raw token stored under "user" by other JWT middlewares.
    if tok, ok := c.Get("user").(*jwt.Token); ok {
        if cl, ok := tok.Claims.(jwt.MapClaims); ok {
            if v, ok := cl["sub"].(string); ok && v != "" {
                return v
            }
        }
    }
    return "guest"
}
