package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"github.com/Kaiser-luz/rio-verde-loja/internal/cache"
	"github.com/Kaiser-luz/rio-verde-loja/internal/database"
	"github.com/Kaiser-luz/rio-verde-loja/internal/handlers/user"
	"github.com/Kaiser-luz/rio-verde-loja/internal/models"
	"github.com/Kaiser-luz/rio-verde-loja/internal/services"
)

// persistOrder grava pedido e itens num batch logado: ou entra tudo,
// ou nada
func persistOrder(order models.Order) error {
	batch := database.Scylla.NewBatch(gocql.LoggedBatch)

	batch.Query(
		`INSERT INTO orders (order_id, profile_id, customer, street, number, complement, district, city, state, zip_code, receiver, reference, delivery_method, shipping_cost, subtotal, total, status, pix_code, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.ProfileID, order.Customer,
		order.Address.Street, order.Address.Number, order.Address.Complement,
		order.Address.District, order.Address.City, order.Address.State,
		order.Address.ZipCode, order.Address.Receiver, order.Address.Reference,
		order.DeliveryMethod, order.ShippingCost, order.Subtotal, order.Total,
		order.Status, order.PixCode, order.CreatedAt,
	)

	for _, item := range order.Items {
		batch.Query(
			`INSERT INTO order_items (order_id, item_id, product_name, price, quantity, color) VALUES (?, ?, ?, ?, ?, ?)`,
			item.OrderID, item.ID, item.ProductName, item.Price, item.Quantity, item.Color,
		)
	}

	return database.Scylla.ExecuteBatch(batch)
}

// 📦 Criar pedido a partir do carrinho. Funciona para visitante e para
// cliente logado (OptionalAuth).
func CreateOrder(c *gin.Context) {
	var input services.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// O token manda: o profile_id do corpo é ignorado quando há login
	var profileAddress *models.Address
	if raw, ok := c.Get("user_id"); ok {
		if id, err := gocql.ParseUUID(raw.(string)); err == nil {
			input.ProfileID = &id
			if p, err := user.FetchProfile(id); err == nil {
				profileAddress = &p.Address
				if input.CustomerName == "" {
					input.CustomerName = p.Name
				}
			}
		}
	} else {
		input.ProfileID = nil
	}

	order, err := services.BuildOrder(input, profileAddress)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := persistOrder(order); err != nil {
		log.Printf("❌ Erro ao gravar pedido: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao registrar pedido"})
		return
	}

	log.Printf("📦 Pedido %s criado: %s, total R$ %.2f", order.ID, order.Customer, order.Total)

	cache.PublishOrderEvent(c.Request.Context(), cache.OrderEvent{
		Type:    "created",
		OrderID: order.ID.String(),
		Status:  order.Status,
		Total:   order.Total,
	})

	c.JSON(http.StatusCreated, order)
}
