package routes

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Kaiser-luz/rio-verde-loja/internal/handlers"
	"github.com/Kaiser-luz/rio-verde-loja/internal/handlers/admin"
	"github.com/Kaiser-luz/rio-verde-loja/internal/handlers/payment"
	"github.com/Kaiser-luz/rio-verde-loja/internal/handlers/product"
	"github.com/Kaiser-luz/rio-verde-loja/internal/handlers/user"
	"github.com/Kaiser-luz/rio-verde-loja/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	r.Use(corsMiddleware())

	api := r.Group("/api")
	{
		// Catálogo público. OptionalAuth decide a visibilidade do
		// preço de estofador.
		catalog := api.Group("/", middleware.OptionalAuth())
		{
			catalog.GET("/products", product.GetAllProducts)
			catalog.GET("/products/search", product.SearchProducts)
			catalog.GET("/products/:id", product.GetProductByID)
			catalog.GET("/categories", product.GetCategories)
			catalog.GET("/categories/:id/products", product.GetProductsByCategory)
		}

		// Auth local e social
		auth := api.Group("/auth")
		{
			auth.POST("/signup", user.Signup)
			auth.POST("/login", user.Login)
			auth.GET("/:provider", user.BeginAuth)
			auth.GET("/:provider/callback", user.CallbackAuth)
		}

		// Área do cliente
		me := api.Group("/me", middleware.AuthRequired())
		{
			me.GET("", user.Me)
			me.PUT("", user.UpdateProfile)
			me.GET("/orders", user.GetMyOrders)
			me.GET("/orders/:id", user.GetOrderByID)
		}

		// Carrinho vira pedido aqui; visitante também compra
		api.POST("/orders", middleware.OptionalAuth(), handlers.CreateOrder)
		api.GET("/orders/:id/pix", handlers.OrderPixQR)

		// Frete e pagamento
		api.POST("/shipping", handlers.EstimateShipping)
		api.POST("/checkout", handlers.Checkout)
		api.POST("/webhook/pagseguro", payment.PagSeguroWebhook)
	}

	// Back-office com senha compartilhada
	adminGroup := r.Group("/admin")
	{
		adminGroup.POST("/login", admin.Login)
		adminGroup.POST("/logout", admin.Logout)

		protected := adminGroup.Group("/", middleware.RequireAdminSession())
		{
			protected.GET("/orders", admin.ListOrders)
			protected.PUT("/orders/status", admin.UpdateOrderStatus)
			protected.GET("/ws/orders", admin.OrderEvents)

			protected.GET("/upholsterers/pending", admin.ListPendingUpholsterers)
			protected.PUT("/upholsterers/:id/approve", admin.ApproveUpholsterer)
			protected.PUT("/upholsterers/:id/reject", admin.RejectUpholsterer)

			protected.POST("/products", product.CreateProduct)
			protected.PUT("/products/:id", product.UpdateProduct)
			protected.DELETE("/products/:id", product.DeleteProduct)
			protected.POST("/products/image", product.UploadProductImage)
			protected.POST("/products/:id/datasheet", product.GenerateDatasheet)

			protected.POST("/categories", product.CreateCategory)
			protected.DELETE("/categories/:id", product.DeleteCategory)

			protected.GET("/products/export", product.ExportProducts)
			protected.POST("/products/import", product.ImportProducts)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
