package handlers

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"github.com/Kaiser-luz/rio-verde-loja/internal/database"
	"github.com/Kaiser-luz/rio-verde-loja/internal/handlers/user"
	"github.com/Kaiser-luz/rio-verde-loja/internal/models"
	"github.com/Kaiser-luz/rio-verde-loja/internal/services"
	"github.com/Kaiser-luz/rio-verde-loja/internal/utils"
)

// LoadOrder carrega o pedido completo, com itens. O webhook de pagamento
// também usa para montar o e-mail de confirmação.
func LoadOrder(orderID gocql.UUID) (models.Order, error) {
	var o models.Order
	err := database.Scylla.Query(
		`SELECT order_id, profile_id, customer, street, number, complement, district, city, state, zip_code, receiver, reference, delivery_method, shipping_cost, subtotal, total, status, pix_code, created_at FROM orders WHERE order_id = ?`,
		orderID,
	).Scan(&o.ID, &o.ProfileID, &o.Customer,
		&o.Address.Street, &o.Address.Number, &o.Address.Complement,
		&o.Address.District, &o.Address.City, &o.Address.State,
		&o.Address.ZipCode, &o.Address.Receiver, &o.Address.Reference,
		&o.DeliveryMethod, &o.ShippingCost, &o.Subtotal, &o.Total,
		&o.Status, &o.PixCode, &o.CreatedAt)
	if err != nil {
		return o, err
	}

	iter := database.Scylla.Query(
		`SELECT item_id, product_name, price, quantity, color FROM order_items WHERE order_id = ?`,
		orderID,
	).Iter()
	var it models.OrderItem
	for iter.Scan(&it.ID, &it.ProductName, &it.Price, &it.Quantity, &it.Color) {
		it.OrderID = orderID
		o.Items = append(o.Items, it)
	}
	return o, iter.Close()
}

// 💳 Cria a sessão de pagamento no PagSeguro e devolve a URL de
// redirecionamento
func Checkout(c *gin.Context) {
	var body struct {
		OrderID string `json:"order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orderID, err := gocql.ParseUUID(body.OrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de pedido inválido"})
		return
	}

	order, err := LoadOrder(orderID)
	if err == gocql.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pedido não encontrado"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// dados do comprador, quando o pedido tem perfil
	var profile *models.Profile
	if order.ProfileID != nil {
		if p, err := user.FetchProfile(*order.ProfileID); err == nil {
			profile = &p
		}
	}

	client, err := services.NewPagSeguroClient()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Pagamento indisponível"})
		return
	}

	origin := c.GetHeader("Origin")
	if origin == "" {
		origin = os.Getenv("FRONTEND_URL")
	}

	payURL, err := client.CreateCheckout(order, profile, origin)
	if err != nil {
		log.Printf("❌ PagSeguro recusou o checkout do pedido %s: %v", order.ID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	log.Printf("💳 Checkout criado para o pedido %s", order.ID)
	c.JSON(http.StatusOK, gin.H{"url": payURL})
}

// Devolve o QR Code do "copia e cola" PIX do pedido, em data URL
func OrderPixQR(c *gin.Context) {
	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de pedido inválido"})
		return
	}

	var pixCode string
	err = database.Scylla.Query(
		`SELECT pix_code FROM orders WHERE order_id = ?`, orderID,
	).Scan(&pixCode)
	if err == gocql.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pedido não encontrado"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if pixCode == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pedido sem código PIX"})
		return
	}

	qr, err := utils.GeneratePixQR(pixCode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao gerar QR Code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pix_code": pixCode, "qr_code": qr})
}
