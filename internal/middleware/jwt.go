package middleware

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	jwtSecret     []byte
	jwtSecretOnce sync.Once
)

// JWTSecret lê o segredo na primeira utilização, depois do carregamento
// do .env (em init do pacote o godotenv ainda não rodou)
func JWTSecret() []byte {
	jwtSecretOnce.Do(func() {
		jwtSecret = []byte(os.Getenv("JWT_SECRET"))
	})
	return jwtSecret
}

// AuthRequired valida o Bearer token e coloca os claims no contexto gin
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token ausente"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Printf("❌ Header Authorization inválido: %v partes", len(parts))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Formato Authorization inválido"})
			c.Abort()
			return
		}

		claims, err := parseClaims(parts[1])
		if err != nil {
			log.Printf("❌ JWT inválido: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok {
			log.Printf("❌ user_id ausente nos claims: %+v", claims)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user_id ausente"})
			c.Abort()
			return
		}

		setClaims(c, userID, claims)
		c.Next()
	}
}

// OptionalAuth extrai os claims quando o token existe e é válido, mas nunca
// bloqueia a requisição. Usado no catálogo para decidir a visibilidade do
// preço de estofador.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			if claims, err := parseClaims(parts[1]); err == nil {
				if userID, ok := claims["user_id"].(string); ok {
					setClaims(c, userID, claims)
				}
			}
		}
		c.Next()
	}
}

func parseClaims(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return JWTSecret(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}

	if exp, ok := claims["exp"].(float64); ok {
		if time.Now().Unix() > int64(exp) {
			return nil, fmt.Errorf("token expirado")
		}
	}
	return claims, nil
}

func setClaims(c *gin.Context, userID string, claims jwt.MapClaims) {
	c.Set("user_id", userID)
	c.Set("email", claims["email"])
	c.Set("role", claims["role"])

	if approved, ok := claims["approved"].(bool); ok {
		c.Set("approved", approved)
	} else {
		c.Set("approved", false)
	}
}
