package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bajaj-rental-api-server/config"
	"bajaj-rental-api-server/internal/auth"
	"bajaj-rental-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter(t *testing.T, roles ...string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, auth.Init(config.JWTConfig{Secret: "test-secret"}))

	router := gin.New()
	group := router.Group("/")
	group.Use(Authenticate())
	if len(roles) > 0 {
		group.Use(Authorize(roles...))
	}
	group.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": c.GetString(CtxUserID),
			"role":   c.GetString(CtxRole),
		})
	})
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthenticateMissingHeader(t *testing.T) {
	router := newProtectedRouter(t)
	w := doRequest(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	router := newProtectedRouter(t)
	w := doRequest(router, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateBadToken(t *testing.T) {
	router := newProtectedRouter(t)
	w := doRequest(router, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateSetsIdentity(t *testing.T) {
	router := newProtectedRouter(t)

	token, err := auth.GenerateJWT("64f000000000000000000001", "ravi@example.com", models.RoleUser)
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "64f000000000000000000001")
	assert.Contains(t, w.Body.String(), models.RoleUser)
}

func TestAuthorizeRejectsWrongRole(t *testing.T) {
	router := newProtectedRouter(t, models.RoleAdmin)

	token, err := auth.GenerateJWT("64f000000000000000000001", "ravi@example.com", models.RoleUser)
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthorizeAllowsListedRole(t *testing.T) {
	router := newProtectedRouter(t, models.RoleAdmin)

	token, err := auth.GenerateJWT("64f000000000000000000002", "admin@example.com", models.RoleAdmin)
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}
