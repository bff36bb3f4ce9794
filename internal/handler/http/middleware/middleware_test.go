package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func signToken(t *testing.T, ja *jwtauth.JWTAuth, claims map[string]interface{}) string {
	t.Helper()
	_, tokenString, err := ja.Encode(claims)
	require.NoError(t, err)
	return tokenString
}

func protectedChain(ja *jwtauth.JWTAuth, adminOnly bool) http.Handler {
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	var h http.Handler = final
	if adminOnly {
		h = AdminOnly(h)
	}
	h = AuthRequired(ja)(h)
	return jwtauth.Verifier(ja)(h)
}

func doRequest(handler http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired(t *testing.T) {
	ja := jwtauth.New("HS256", []byte(testSecret), nil)
	handler := protectedChain(ja, false)

	t.Run("no token", func(t *testing.T) {
		rec := doRequest(handler, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		other := jwtauth.New("HS256", []byte("some-other-secret"), nil)
		rec := doRequest(handler, signToken(t, other, map[string]interface{}{
			"employee_id": "emp-1",
		}))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token without employee identity", func(t *testing.T) {
		rec := doRequest(handler, signToken(t, ja, map[string]interface{}{
			"sub": "someone",
		}))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		rec := doRequest(handler, signToken(t, ja, map[string]interface{}{
			"employee_id": "emp-1",
		}))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAdminOnly(t *testing.T) {
	ja := jwtauth.New("HS256", []byte(testSecret), nil)
	handler := protectedChain(ja, true)

	t.Run("non-admin employee", func(t *testing.T) {
		rec := doRequest(handler, signToken(t, ja, map[string]interface{}{
			"employee_id": "emp-1",
			"is_admin":    false,
		}))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing admin claim", func(t *testing.T) {
		rec := doRequest(handler, signToken(t, ja, map[string]interface{}{
			"employee_id": "emp-1",
		}))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin", func(t *testing.T) {
		rec := doRequest(handler, signToken(t, ja, map[string]interface{}{
			"employee_id": "admin-1",
			"is_admin":    true,
		}))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
