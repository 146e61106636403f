package admin

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kaiser-luz/rio-verde-loja/internal/middleware"
)

func adminRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/admin/login", Login)
	r.POST("/admin/logout", Logout)

	protected := r.Group("/admin", middleware.RequireAdminSession())
	protected.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return r
}

func TestAdminLoginWrongPassword(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "segredo123")
	r := adminRouter()

	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{"password":"errada"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestAdminLoginSuccessOpensSession(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "segredo123")
	r := adminRouter()

	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{"password":"segredo123"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	// o cookie de sessão abre as rotas protegidas
	ping := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	for _, cookie := range cookies {
		ping.AddCookie(cookie)
	}
	pw := httptest.NewRecorder()
	r.ServeHTTP(pw, ping)
	assert.Equal(t, http.StatusOK, pw.Code)
}

func TestAdminRoutesBlockedWithoutSession(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "segredo123")
	r := adminRouter()

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminLoginDisabledWithoutPassword(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "")
	r := adminRouter()

	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{"password":"qualquer"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
