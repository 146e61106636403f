package middleware

import (
	"net/http"
	"os"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

const AdminSessionName = "admin_session"

var (
	adminStore     *sessions.CookieStore
	adminStoreOnce sync.Once
)

// AdminStore devolve o CookieStore compartilhado do back-office.
// Inicialização preguiçosa para que o SESSION_SECRET seja lido depois
// do carregamento do .env.
func AdminStore() *sessions.CookieStore {
	adminStoreOnce.Do(func() {
		secret := os.Getenv("SESSION_SECRET")
		if secret == "" {
			secret = "rio-verde-dev-secret"
		}
		adminStore = sessions.NewCookieStore([]byte(secret))
		adminStore.Options = &sessions.Options{
			Path:     "/",
			MaxAge:   86400, // sessão do painel dura um dia
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		}
	})
	return adminStore
}

// RequireAdminSession protege as rotas /admin com o cookie de sessão
// criado no login por senha compartilhada.
func RequireAdminSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := AdminStore().Get(c.Request, AdminSessionName)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Sessão inválida"})
			c.Abort()
			return
		}

		if auth, ok := session.Values["authenticated"].(bool); !ok || !auth {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Acesso restrito ao administrador"})
			c.Abort()
			return
		}

		c.Next()
	}
}
