package main

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/facebook"
	"github.com/markbates/goth/providers/google"

	"github.com/Kaiser-luz/rio-verde-loja/internal/config"
	"github.com/Kaiser-luz/rio-verde-loja/internal/database"
	"github.com/Kaiser-luz/rio-verde-loja/internal/middleware"
	"github.com/Kaiser-luz/rio-verde-loja/internal/routes"
)

func main() {
	config.Load()

	// Sem token do PagSeguro a loja não vende: falha já no boot
	if os.Getenv("PAGSEGURO_TOKEN") == "" {
		log.Fatal("❌ PAGSEGURO_TOKEN ausente no .env")
	}
	log.Println("✅ PagSeguro configurado")

	database.ConnectDatabases()
	defer database.CloseScylla()

	initOAuthProviders()

	r := gin.Default()
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Loja Rio Verde no ar na porta", port)
	r.Run(":" + port)
}

func initOAuthProviders() {
	// O mesmo store de cookies serve o goth e a sessão do admin
	gothic.Store = middleware.AdminStore()

	gothic.GetProviderName = func(req *http.Request) (string, error) {
		if provider := req.URL.Query().Get("provider"); provider != "" {
			return provider, nil
		}
		if provider := req.FormValue("provider"); provider != "" {
			return provider, nil
		}
		return "", errors.New("provider não encontrado")
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	var providers []goth.Provider

	if id, secret := os.Getenv("GOOGLE_CLIENT_ID"), os.Getenv("GOOGLE_CLIENT_SECRET"); id != "" && secret != "" {
		providers = append(providers, google.New(id, secret, baseURL+"/api/auth/google/callback"))
		log.Println("✅ Google OAuth ativado")
	}

	if id, secret := os.Getenv("FACEBOOK_CLIENT_ID"), os.Getenv("FACEBOOK_CLIENT_SECRET"); id != "" && secret != "" {
		providers = append(providers, facebook.New(id, secret, baseURL+"/api/auth/facebook/callback"))
		log.Println("✅ Facebook OAuth ativado")
	}

	if len(providers) == 0 {
		log.Println("⚠️ Nenhum provider OAuth configurado")
		return
	}

	goth.UseProviders(providers...)
	log.Printf("✅ %d provider(s) OAuth inicializado(s)", len(providers))
}
