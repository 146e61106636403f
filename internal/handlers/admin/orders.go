package admin

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"github.com/Kaiser-luz/rio-verde-loja/internal/cache"
	"github.com/Kaiser-luz/rio-verde-loja/internal/database"
	"github.com/Kaiser-luz/rio-verde-loja/internal/models"
	"github.com/Kaiser-luz/rio-verde-loja/internal/services"
)

// ListOrders devolve todos os pedidos para o painel, com itens
func ListOrders(c *gin.Context) {
	iter := database.Scylla.Query(
		`SELECT order_id, profile_id, customer, street, number, complement, district, city, state, zip_code, receiver, reference, delivery_method, shipping_cost, subtotal, total, status, pix_code, created_at FROM orders`,
	).Iter()

	orders := []models.Order{}
	var o models.Order
	for iter.Scan(&o.ID, &o.ProfileID, &o.Customer,
		&o.Address.Street, &o.Address.Number, &o.Address.Complement,
		&o.Address.District, &o.Address.City, &o.Address.State,
		&o.Address.ZipCode, &o.Address.Receiver, &o.Address.Reference,
		&o.DeliveryMethod, &o.ShippingCost, &o.Subtotal, &o.Total,
		&o.Status, &o.PixCode, &o.CreatedAt) {
		orders = append(orders, o)
		o = models.Order{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	for i := range orders {
		itemIter := database.Scylla.Query(
			`SELECT item_id, product_name, price, quantity, color FROM order_items WHERE order_id = ?`,
			orders[i].ID,
		).Iter()
		var it models.OrderItem
		for itemIter.Scan(&it.ID, &it.ProductName, &it.Price, &it.Quantity, &it.Color) {
			it.OrderID = orders[i].ID
			orders[i].Items = append(orders[i].Items, it)
		}
		if err := itemIter.Close(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, orders)
}

// UpdateOrderStatus aplica o vocabulário fechado de status. Requisição
// sem id ou sem status é no-op proposital (o painel manda formulários
// incompletos ao navegar).
func UpdateOrderStatus(c *gin.Context) {
	var body struct {
		OrderID string `json:"order_id"`
		Status  string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := services.ValidateStatusUpdate(body.OrderID, body.Status)
	if err == services.ErrMissingOrderRef {
		c.JSON(http.StatusOK, gin.H{"message": "Nada a fazer"})
		return
	}
	if err == services.ErrInvalidStatus {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status inválido", "validos": []string{
			models.StatusPendente, models.StatusPago, models.StatusEnviado,
			models.StatusEntregue, models.StatusCancelado,
		}})
		return
	}

	orderID, err := gocql.ParseUUID(body.OrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de pedido inválido"})
		return
	}

	var current string
	err = database.Scylla.Query(`SELECT status FROM orders WHERE order_id = ?`, orderID).Scan(&current)
	if err == gocql.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pedido não encontrado"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := database.Scylla.Query(
		`UPDATE orders SET status = ? WHERE order_id = ?`, body.Status, orderID,
	).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("📦 Admin mudou o pedido %s: %s -> %s", orderID, current, body.Status)

	cache.PublishOrderEvent(c.Request.Context(), cache.OrderEvent{
		Type:    "status",
		OrderID: orderID.String(),
		Status:  body.Status,
	})

	c.JSON(http.StatusOK, gin.H{"order_id": orderID.String(), "status": body.Status})
}
