package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"musa/models"
	"musa/utils"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "middleware-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func requesterEcho(c *gin.Context) {
	r := GetRequester(c)
	if r == nil {
		c.JSON(http.StatusOK, gin.H{"anonymous": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": r.ID, "role": r.Role})
}

func serve(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func token(t *testing.T, role string) string {
	return tokenFor(t, "u1", role)
}

func tokenFor(t *testing.T, subject, role string) string {
	tok, err := utils.GenerateToken(testSecret, subject, subject+"@example.com", role, time.Hour)
	require.NoError(t, err)
	return tok
}

// stubUsers serves GetByID from a fixed map; other methods are unused here.
type stubUsers map[string]*models.User

func (s stubUsers) GetByID(id string) (*models.User, error) { return s[id], nil }
func (s stubUsers) GetByEmail(string) (*models.User, error) { return nil, nil }
func (s stubUsers) Create(*models.User) error               { return nil }
func (s stubUsers) Update(*models.User) error               { return nil }
func (s stubUsers) MarkVerified(string) error               { return nil }

var users = stubUsers{
	"u1":    {ID: "u1", Role: models.RoleUser},
	"root":  {ID: "root", Role: models.RoleAdmin},
	"ex-op": {ID: "ex-op", Role: models.RoleUser},
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/", JWTAuthMiddleware(testSecret, users), requesterEcho)

	assert.Equal(t, http.StatusUnauthorized, serve(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "not-a-jwt").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, tokenFor(t, "gone", models.RoleAdmin)).Code)

	w := serve(r, token(t, models.RoleUser))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"u1"`)
}

func TestJWTAuthMiddlewareTakesRoleFromStore(t *testing.T) {
	r := gin.New()
	r.GET("/", JWTAuthMiddleware(testSecret, users), requesterEcho)

	w := serve(r, tokenFor(t, "ex-op", models.RoleAdmin))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"user"`)
}

func TestOptionalJWTAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/", OptionalJWTAuthMiddleware(testSecret, users), requesterEcho)

	assert.Contains(t, serve(r, "").Body.String(), "anonymous")
	assert.Contains(t, serve(r, "garbage").Body.String(), "anonymous")
	assert.Contains(t, serve(r, tokenFor(t, "gone", models.RoleAdmin)).Body.String(), "anonymous")
	assert.Contains(t, serve(r, tokenFor(t, "root", models.RoleAdmin)).Body.String(), `"role":"admin"`)
}

func TestRequireAdmin(t *testing.T) {
	r := gin.New()
	r.GET("/", JWTAuthMiddleware(testSecret, users), RequireAdmin(), requesterEcho)

	assert.Equal(t, http.StatusForbidden, serve(r, token(t, models.RoleUser)).Code)
	assert.Equal(t, http.StatusForbidden, serve(r, tokenFor(t, "ex-op", models.RoleAdmin)).Code)
	assert.Equal(t, http.StatusOK, serve(r, tokenFor(t, "root", models.RoleAdmin)).Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/", RateLimitMiddleware(2), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, serve(r, "").Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestGeolocator_Lookup(t *testing.T) {
	calls := 0
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"ip":"93.44.1.1","city":"Roma","country_name":"Italy","country_code":"IT"}`)
	}))
	defer api.Close()

	g := NewGeolocator()
	g.Endpoint = api.URL + "/%s/json/"

	geo := g.Lookup("93.44.1.1", zap.NewNop())
	assert.Equal(t, "Roma", geo.City)
	g.Lookup("93.44.1.1", zap.NewNop())
	assert.Equal(t, 1, calls)

	private := g.Lookup("192.168.1.10", zap.NewNop())
	assert.Equal(t, unknownCountry, private.Country)
	assert.Equal(t, 1, calls)
}

func TestGeolocator_CacheIsBounded(t *testing.T) {
	calls := 0
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"city":"Roma","country_name":"Italy"}`)
	}))
	defer api.Close()

	g := NewGeolocator()
	g.Endpoint = api.URL + "/%s/json/"
	g.MaxEntries = 1

	g.Lookup("93.44.1.1", zap.NewNop())
	g.Lookup("93.44.1.2", zap.NewNop())
	g.Lookup("93.44.1.2", zap.NewNop())

	assert.Equal(t, 3, calls)
	assert.Equal(t, 1, g.cache.ItemCount())
}

func TestRateLimiterStore_ForgetsIdleClients(t *testing.T) {
	store := newRateLimiterStore(1)
	store.limiters = cache.New(20*time.Millisecond, 5*time.Millisecond)

	assert.True(t, store.getLimiter("93.44.1.1").Allow())
	assert.False(t, store.getLimiter("93.44.1.1").Allow())

	require.Eventually(t, func() bool { return store.limiters.ItemCount() == 0 }, time.Second, 10*time.Millisecond)
	assert.True(t, store.getLimiter("93.44.1.1").Allow())
}

func TestGeolocationMiddleware_SetsCity(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"city":"Milano","country_name":"Italy"}`)
	}))
	defer api.Close()
	g := NewGeolocator()
	g.Endpoint = api.URL + "/%s/json/"

	r := gin.New()
	r.GET("/", GeolocationMiddleware(g), func(c *gin.Context) {
		c.String(http.StatusOK, ClientCity(c))
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "93.44.1.2")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "Milano", w.Body.String())
}

func TestGetClientIP(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"forwarded list", map[string]string{"X-Forwarded-For": "93.44.1.1, 10.0.0.1"}, "93.44.1.1"},
		{"real ip", map[string]string{"X-Real-IP": "93.44.1.3"}, "93.44.1.3"},
		{"garbage header falls back", map[string]string{"X-Forwarded-For": "unknown"}, "192.0.2.1"},
		{"remote addr", nil, "192.0.2.1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tc.headers {
				c.Request.Header.Set(k, v)
			}
			assert.Equal(t, tc.want, getClientIP(c))
		})
	}
}
