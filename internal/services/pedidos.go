package services

import (
	"errors"
	"time"

	"github.com/Kaiser-luz/rio-verde-loja/internal/models"

	"github.com/gocql/gocql"
)

// Método de entrega usado quando o checkout não informa nenhum
const DefaultDeliveryMethod = "Retirada na Loja (Bacacheri)"

var (
	ErrEmptyCart       = errors.New("carrinho vazio")
	ErrNegativeAmount  = errors.New("valores negativos não são aceitos")
	ErrInvalidStatus   = errors.New("status fora do vocabulário")
	ErrMissingOrderRef = errors.New("pedido não informado")
)

// CreateOrderInput é o contrato de criação de pedido vindo do checkout
type CreateOrderInput struct {
	Items          []models.CartItem `json:"items"`
	Subtotal       float64           `json:"subtotal"`
	CustomerName   string            `json:"customer_name"`
	ProfileID      *gocql.UUID       `json:"profile_id,omitempty"`
	ShippingCost   float64           `json:"shipping_cost"`
	DeliveryMethod string            `json:"delivery_method"`
	Address        *models.Address   `json:"address,omitempty"`
}

// BuildOrder monta o pedido e seus itens a partir do carrinho. O total é
// sempre recalculado aqui: o cliente manda apenas o subtotal.
// profileAddress é o endereço salvo no perfil, usado quando o checkout não
// manda um endereço explícito.
func BuildOrder(in CreateOrderInput, profileAddress *models.Address) (models.Order, error) {
	if len(in.Items) == 0 {
		return models.Order{}, ErrEmptyCart
	}
	if in.Subtotal < 0 || in.ShippingCost < 0 {
		return models.Order{}, ErrNegativeAmount
	}

	customer := in.CustomerName
	if customer == "" {
		customer = "Visitante"
	}

	method := in.DeliveryMethod
	if method == "" {
		method = DefaultDeliveryMethod
	}

	// Precedência de endereço: explícito > perfil > nenhum (retirada de visitante)
	var address models.Address
	if in.Address != nil {
		address = *in.Address
	} else if in.ProfileID != nil && profileAddress != nil {
		address = *profileAddress
	}

	order := models.Order{
		ID:             gocql.TimeUUID(),
		ProfileID:      in.ProfileID,
		Customer:       customer,
		Address:        address,
		DeliveryMethod: method,
		ShippingCost:   in.ShippingCost,
		Subtotal:       in.Subtotal,
		Total:          in.Subtotal + in.ShippingCost,
		Status:         models.StatusPendente,
		CreatedAt:      time.Now(),
	}

	for _, item := range in.Items {
		order.Items = append(order.Items, models.OrderItem{
			ID:          gocql.TimeUUID(),
			OrderID:     order.ID,
			ProductName: item.Name,
			Price:       item.Price,
			Quantity:    item.Quantity,
			Color:       item.Color,
		})
	}

	return order, nil
}

// ShouldApplyStatus decide se uma notificação de pagamento grava o novo
// status e dispara os efeitos (e-mail, evento). O processador reenvia
// notificações: status repetido não faz nada de novo.
func ShouldApplyStatus(current, next string) bool {
	if !models.IsValidStatus(next) {
		return false
	}
	return current != next
}

// ValidateStatusUpdate aplica o vocabulário fechado no caminho de escrita.
// id ou status vazios continuam sendo no-op (contrato do painel admin),
// sinalizado por ErrMissingOrderRef.
func ValidateStatusUpdate(id, status string) error {
	if id == "" || status == "" {
		return ErrMissingOrderRef
	}
	if !models.IsValidStatus(status) {
		return ErrInvalidStatus
	}
	return nil
}
