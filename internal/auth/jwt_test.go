package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workleaf/resource-booking-backend/internal/user"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.GenerateToken("u1", "manager")
	require.NoError(t, err)

	claims, err := m.ParseAndValidate(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "manager", claims.Role)
}

func TestJWTRejections(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager("other-secret", time.Hour)
		token, err := other.GenerateToken("u1", "employee")
		require.NoError(t, err)

		_, err = m.ParseAndValidate(token)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewJWTManager("test-secret", -time.Minute)
		token, err := expired.GenerateToken("u1", "employee")
		require.NoError(t, err)

		_, err = m.ParseAndValidate(token)
		assert.Error(t, err)
	})

	t.Run("garbage input", func(t *testing.T) {
		_, err := m.ParseAndValidate("not.a.jwt")
		assert.Error(t, err)
	})
}

func TestIdentityRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)

	m := NewJWTManager("test-secret", time.Hour)

	newRouter := func(trustHeaders bool) (*gin.Engine, *user.Identity) {
		var captured user.Identity
		r := gin.New()
		r.GET("/probe", IdentityRequired(m, trustHeaders), func(c *gin.Context) {
			captured = GetIdentity(c)
			c.Status(http.StatusOK)
		})
		return r, &captured
	}

	t.Run("valid bearer token", func(t *testing.T) {
		r, captured := newRouter(false)

		token, err := m.GenerateToken("u1", "admin")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, user.Identity{UserID: "u1", Role: user.RoleAdmin}, *captured)
	})

	t.Run("missing header", func(t *testing.T) {
		r, _ := newRouter(false)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/probe", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bad role claim", func(t *testing.T) {
		r, _ := newRouter(false)

		token, err := m.GenerateToken("u1", "superuser")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("proxy headers accepted only when trusted", func(t *testing.T) {
		trusted, captured := newRouter(true)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/probe", nil)
		req.Header.Set("X-User-Id", "u2")
		req.Header.Set("X-Role", "Manager")
		trusted.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, user.Identity{UserID: "u2", Role: user.RoleManager}, *captured)

		untrusted, _ := newRouter(false)
		w = httptest.NewRecorder()
		req = httptest.NewRequest("GET", "/probe", nil)
		req.Header.Set("X-User-Id", "u2")
		req.Header.Set("X-Role", "manager")
		untrusted.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bearer token wins over proxy headers", func(t *testing.T) {
		r, captured := newRouter(true)

		token, err := m.GenerateToken("u1", "employee")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("X-User-Id", "u9")
		req.Header.Set("X-Role", "admin")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "u1", captured.UserID)
		assert.Equal(t, user.RoleEmployee, captured.Role)
	})
}
