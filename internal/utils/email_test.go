package utils

import (
	"strings"
	"testing"

	"github.com/Kaiser-luz/rio-verde-loja/internal/models"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderConfirmationHTML(t *testing.T) {
	order := models.Order{
		ID:             gocql.TimeUUID(),
		Customer:       "Maria",
		DeliveryMethod: "Entrega Expressa (Moto)",
		ShippingCost:   15.00,
		Subtotal:       224.75,
		Total:          239.75,
		Status:         models.StatusPago,
		Items: []models.OrderItem{
			{ProductName: "Linho Rústico", Price: 89.90, Quantity: 2.5, Color: "Cru"},
			{ProductName: "Espuma D33", Price: 45.00, Quantity: 2, Color: "Padrão"},
		},
	}

	html := GenerateOrderConfirmationHTML(order)

	assert.Contains(t, html, "Maria")
	assert.Contains(t, html, order.ID.String())

	// todos os itens do pedido aparecem na tabela
	assert.Contains(t, html, "Linho Rústico")
	assert.Contains(t, html, "Espuma D33")
	assert.Contains(t, html, "Cru")
	require.GreaterOrEqual(t, strings.Count(html, "<tr>"), 2)

	// frete com o método e o valor reais, nunca a linha vazia
	assert.Contains(t, html, "Frete (Entrega Expressa (Moto)): R$ 15.00")
	assert.NotContains(t, html, "Frete (): R$ 0.00")
	assert.Contains(t, html, "Total: R$ 239.75")
}
