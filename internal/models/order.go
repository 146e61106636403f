package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Vocabulário fechado de status de pedido. O update valida contra esta
// lista em vez de aceitar texto livre.
const (
	StatusPendente  = "pendente"
	StatusPago      = "pago"
	StatusEnviado   = "enviado"
	StatusEntregue  = "entregue"
	StatusCancelado = "cancelado"
)

var validStatuses = map[string]bool{
	StatusPendente:  true,
	StatusPago:      true,
	StatusEnviado:   true,
	StatusEntregue:  true,
	StatusCancelado: true,
}

// IsValidStatus verifica se o status pertence ao vocabulário
func IsValidStatus(s string) bool {
	return validStatuses[s]
}

// Order é o pedido persistido. O endereço é uma cópia feita na criação,
// não uma referência viva ao perfil.
type Order struct {
	ID             gocql.UUID  `json:"id"`
	ProfileID      *gocql.UUID `json:"profile_id,omitempty"` // nulo em compra de visitante
	Customer       string      `json:"customer"`
	Address        Address     `json:"address"`
	DeliveryMethod string      `json:"delivery_method"`
	ShippingCost   float64     `json:"shipping_cost"`
	Subtotal       float64     `json:"subtotal"`
	Total          float64     `json:"total"` // sempre subtotal + frete, calculado no servidor
	Status         string      `json:"status"`
	PixCode        string      `json:"pix_code,omitempty"` // "copia e cola" devolvido pelo PagSeguro
	CreatedAt      time.Time   `json:"created_at"`
	Items          []OrderItem `json:"items,omitempty"`
}

// OrderItem é um retrato do produto no momento da compra: edições
// posteriores de preço/nome não alteram pedidos antigos.
type OrderItem struct {
	ID          gocql.UUID `json:"id"`
	OrderID     gocql.UUID `json:"-"`
	ProductName string     `json:"product_name"`
	Price       float64    `json:"price"`
	Quantity    float64    `json:"quantity"` // fracionário para metro
	Color       string     `json:"color"`
}
