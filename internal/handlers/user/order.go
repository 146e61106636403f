package user

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"github.com/Kaiser-luz/rio-verde-loja/internal/database"
	"github.com/Kaiser-luz/rio-verde-loja/internal/models"
)

const orderColumns = `order_id, profile_id, customer, street, number, complement, district, city, state, zip_code, receiver, reference, delivery_method, shipping_cost, subtotal, total, status, pix_code, created_at`

// sortNewestFirst ordena por data de criação: o índice por perfil não
// devolve as linhas em nenhuma ordem útil
func sortNewestFirst(orders []models.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

func orderDest(o *models.Order) []interface{} {
	return []interface{}{
		&o.ID, &o.ProfileID, &o.Customer,
		&o.Address.Street, &o.Address.Number, &o.Address.Complement,
		&o.Address.District, &o.Address.City, &o.Address.State,
		&o.Address.ZipCode, &o.Address.Receiver, &o.Address.Reference,
		&o.DeliveryMethod, &o.ShippingCost, &o.Subtotal, &o.Total,
		&o.Status, &o.PixCode, &o.CreatedAt,
	}
}

func loadOrderItems(orderID gocql.UUID) ([]models.OrderItem, error) {
	iter := database.Scylla.Query(
		`SELECT item_id, product_name, price, quantity, color FROM order_items WHERE order_id = ?`,
		orderID,
	).Iter()

	items := []models.OrderItem{}
	var it models.OrderItem
	for iter.Scan(&it.ID, &it.ProductName, &it.Price, &it.Quantity, &it.Color) {
		it.OrderID = orderID
		items = append(items, it)
	}
	return items, iter.Close()
}

// GetMyOrders lista os pedidos do perfil logado, mais recente primeiro
func GetMyOrders(c *gin.Context) {
	id, ok := currentProfileID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
		return
	}

	iter := database.Scylla.Query(
		`SELECT `+orderColumns+` FROM orders WHERE profile_id = ?`, id,
	).Iter()

	orders := []models.Order{}
	var o models.Order
	for iter.Scan(orderDest(&o)...) {
		orders = append(orders, o)
		o = models.Order{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sortNewestFirst(orders)
	c.JSON(http.StatusOK, orders)
}

// GetOrderByID devolve um pedido com itens; só o dono pode ver
func GetOrderByID(c *gin.Context) {
	profileID, ok := currentProfileID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
		return
	}

	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de pedido inválido"})
		return
	}

	var o models.Order
	err = database.Scylla.Query(
		`SELECT `+orderColumns+` FROM orders WHERE order_id = ?`, orderID,
	).Scan(orderDest(&o)...)
	if err == gocql.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pedido não encontrado"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if o.ProfileID == nil || *o.ProfileID != profileID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Pedido de outro cliente"})
		return
	}

	items, err := loadOrderItems(o.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	o.Items = items

	c.JSON(http.StatusOK, o)
}
