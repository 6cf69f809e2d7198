package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const secret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func router() *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthMiddleware(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, Actor(c))
	})
	r.GET("/admin", AuthMiddleware(secret), RequireRole(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareSetsActor(t *testing.T) {
	user := &models.User{ID: 7, Role: models.RoleBarber}
	token, err := IssueToken(secret, time.Hour, user, 3, time.Now())
	require.NoError(t, err)

	w := get(router(), "/me", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"UserID":7,"Role":"barber","BarberID":3}`, w.Body.String())
}

func TestAuthMiddlewareRejects(t *testing.T) {
	user := &models.User{ID: 7, Role: models.RoleClient}

	expired, err := IssueToken(secret, time.Hour, user, 0, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	forged, err := IssueToken("other", time.Hour, user, 0, time.Now())
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, get(router(), "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(router(), "/me", expired).Code)
	assert.Equal(t, http.StatusUnauthorized, get(router(), "/me", forged).Code)

	valid, err := IssueToken(secret, time.Hour, user, 0, time.Now())
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, get(router(), "/admin", valid).Code)
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	r.Use(NewRateLimiter(0.001, 2).Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, get(r, "/", "").Code)
	assert.Equal(t, http.StatusOK, get(r, "/", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, "/", "").Code)
}
