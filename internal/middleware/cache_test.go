package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/bus-ticketing/internal/config"
)

func TestCacheEntryRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	body := []byte(`{"items":[]}`)

	payload, err := encodeEntry(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodeEntry(payload)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)
}

func TestDecodeEntryRejectsShortPayload(t *testing.T) {
	_, _, _, ok := decodeEntry([]byte{1, 2, 3})
	assert.False(t, ok)
}

func TestCacheKeyStrategies(t *testing.T) {
	e := echo.New()
	newCtx := func(target string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/v1/trips/:id/seats")
		return c
	}
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	withQuery := cacheKey(cfg, newCtx("/v1/trips/9/seats?x=1"))
	sameQuery := cacheKey(cfg, newCtx("/v1/trips/9/seats?x=1"))
	otherQuery := cacheKey(cfg, newCtx("/v1/trips/9/seats?x=2"))

	assert.Equal(t, withQuery, sameQuery)
	assert.NotEqual(t, withQuery, otherQuery)

	// "route" strategy ignores the query string
	cfg.KeyStrategy = "route"
	assert.Equal(t,
		cacheKey(cfg, newCtx("/v1/trips/9/seats?x=1")),
		cacheKey(cfg, newCtx("/v1/trips/9/seats?x=2")),
	)
}

func TestShouldStoreSkipsOversizedBodies(t *testing.T) {
	assert.True(t, shouldStore(http.StatusOK, 100, 1024))
	assert.True(t, shouldStore(http.StatusOK, 1024, 1024))
	assert.True(t, shouldStore(http.StatusOK, 5000, 0)) // no limit configured

	// an overflowing body must never be cached
	assert.False(t, shouldStore(http.StatusOK, 1025, 1024))
	assert.False(t, shouldStore(http.StatusNotFound, 10, 1024))
}

func TestResponseRecorderTruncatesAtLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	rr := &responseRecorder{ResponseWriter: rec, status: http.StatusOK, limit: 5}

	n, err := rr.Write([]byte("0123456789"))
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	assert.Equal(t, "01234", rr.buf.String())
	// the client still receives the full body
	assert.Equal(t, "0123456789", rec.Body.String())
}
