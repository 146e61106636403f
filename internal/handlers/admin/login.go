package admin

import (
	"crypto/subtle"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/Kaiser-luz/rio-verde-loja/internal/middleware"
)

// Login do back-office: senha única compartilhada, sem usuário. O
// sucesso grava o cookie de sessão que o RequireAdminSession verifica.
func Login(c *gin.Context) {
	var body struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expected := os.Getenv("ADMIN_PASSWORD")
	if expected == "" {
		log.Println("⚠️ ADMIN_PASSWORD não configurada, login admin desabilitado")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Login admin desabilitado"})
		return
	}

	if subtle.ConstantTimeCompare([]byte(body.Password), []byte(expected)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Senha incorreta"})
		return
	}

	session, _ := middleware.AdminStore().Get(c.Request, middleware.AdminSessionName)
	session.Values["authenticated"] = true
	if err := session.Save(c.Request, c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar sessão"})
		return
	}

	log.Println("✅ Sessão admin aberta")
	c.JSON(http.StatusOK, gin.H{"message": "Sessão iniciada"})
}

func Logout(c *gin.Context) {
	session, _ := middleware.AdminStore().Get(c.Request, middleware.AdminSessionName)
	session.Values["authenticated"] = false
	session.Options.MaxAge = -1
	if err := session.Save(c.Request, c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao encerrar sessão"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sessão encerrada"})
}
