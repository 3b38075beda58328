package middleware

import (
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/restaurant-table-booking/internal/config"
)

// newCtx builds an Echo context for the given target URL with the resolved
// route path set, mimicking what the router produces for a matched request.
func newCtx(t *testing.T, target, path string) echo.Context {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest("GET", target, nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.SetPath(path)
    return c
}

func testCacheCfg() config.CacheConfig {
    return config.CacheConfig{
        Enabled:     true,
        Methods:     map[string]bool{"GET": true},
        KeyStrategy: "route_query",
        Prefix:      "rtb:cache",
    }
}

func TestCacheKeyScopedToUser(t *testing.T) {
    cfg := testCacheCfg()

    t.Run("different users get different keys for the same request", func(t *testing.T) {
        a := newCtx(t, "/v1/bookings?page=1", "/v1/bookings")
        a.Set("user_id", float64(42))
        b := newCtx(t, "/v1/bookings?page=1", "/v1/bookings")
        b.Set("user_id", float64(99))

        if cacheKeyFrom(cfg, a) == cacheKeyFrom(cfg, b) {
            t.Fatal("cache key must differ between users on the same route and query")
        }
    })

    t.Run("guest and authenticated caller never share a key", func(t *testing.T) {
        auth := newCtx(t, "/v1/bookings", "/v1/bookings")
        auth.Set("user_id", float64(42))
        guest := newCtx(t, "/v1/bookings", "/v1/bookings")

        if cacheKeyFrom(cfg, auth) == cacheKeyFrom(cfg, guest) {
            t.Fatal("an entry primed by an authenticated user must not be served to a guest")
        }
    })

    t.Run("same user and request yields a stable key", func(t *testing.T) {
        a := newCtx(t, "/v1/restaurants?city=Oslo", "/v1/restaurants")
        a.Set("user_id", float64(42))
        b := newCtx(t, "/v1/restaurants?city=Oslo", "/v1/restaurants")
        b.Set("user_id", float64(42))

        if cacheKeyFrom(cfg, a) != cacheKeyFrom(cfg, b) {
            t.Fatal("identical requests from the same user must hash to the same key")
        }
    })

    t.Run("query string participates in the key", func(t *testing.T) {
        a := newCtx(t, "/v1/restaurants?city=Oslo", "/v1/restaurants")
        b := newCtx(t, "/v1/restaurants?city=Bergen", "/v1/restaurants")

        if cacheKeyFrom(cfg, a) == cacheKeyFrom(cfg, b) {
            t.Fatal("different query strings must not collide")
        }
    })
}

func TestUserID(t *testing.T) {
    cases := []struct {
        name string
        set  interface{}
        want string
    }{
        {"float64 claim", float64(42), "42"},
        {"string claim", "42", "42"},
        {"uint64 claim", uint64(7), "7"},
        {"int64 claim", int64(7), "7"},
        {"unset", nil, "guest"},
        {"empty string", "", "guest"},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            c := newCtx(t, "/v1/me", "/v1/me")
            if tc.set != nil {
                c.Set("user_id", tc.set)
            }
            if got := userID(c); got != tc.want {
                t.Fatalf("userID = %q, want %q", got, tc.want)
            }
        })
    }
}
