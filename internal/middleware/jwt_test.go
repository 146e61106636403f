package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "segredo-de-teste"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protegida", AuthRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})
	r.GET("/catalogo", OptionalAuth(), func(c *gin.Context) {
		role, _ := c.Get("role")
		c.JSON(http.StatusOK, gin.H{"role": role})
	})
	return r
}

func get(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// O segredo tem que ser lido depois do carregamento do ambiente: o env
// só é definido aqui, muito depois do init do pacote.
func TestAuthRequiredReadsSecretAfterEnvLoad(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	r := authRouter()

	token := signToken(t, jwt.MapClaims{
		"user_id": "3c0f8a52-0000-1000-8000-000000000001",
		"email":   "maria@example.com",
		"role":    "customer",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	w := get(r, "/protegida", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "3c0f8a52")
}

func TestAuthRequiredRejectsExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	r := authRouter()

	token := signToken(t, jwt.MapClaims{
		"user_id": "abc",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	w := get(r, "/protegida", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredRejectsMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	r := authRouter()

	assert.Equal(t, http.StatusUnauthorized, get(r, "/protegida", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/protegida", "Token abc").Code)
}

func TestOptionalAuthNeverBlocks(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	r := authRouter()

	// sem token a rota responde normalmente, sem claims
	w := get(r, "/catalogo", "")
	assert.Equal(t, http.StatusOK, w.Code)

	// token inválido também não bloqueia o catálogo
	w = get(r, "/catalogo", "Bearer lixo")
	assert.Equal(t, http.StatusOK, w.Code)

	// token válido preenche os claims
	token := signToken(t, jwt.MapClaims{
		"user_id":  "abc",
		"role":     "upholsterer",
		"approved": true,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	w = get(r, "/catalogo", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "upholsterer")
}
