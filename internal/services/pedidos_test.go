package services

import (
	"testing"

	"github.com/Kaiser-luz/rio-verde-loja/internal/models"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOrderTotal(t *testing.T) {
	order, err := BuildOrder(CreateOrderInput{
		Items:        []models.CartItem{{Name: "Linho Rústico", Price: 50, Quantity: 2, Type: models.TypeMeter}},
		Subtotal:     100.00,
		CustomerName: "Maria",
		ShippingCost: 15.00,
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 115.00, order.Total)
	assert.Equal(t, 100.00, order.Subtotal)
	assert.Equal(t, 15.00, order.ShippingCost)
	assert.Equal(t, models.StatusPendente, order.Status)
}

func TestBuildOrderDefaults(t *testing.T) {
	order, err := BuildOrder(CreateOrderInput{
		Items:    []models.CartItem{{Name: "Cola Spray", Price: 30, Quantity: 1, Type: models.TypeUnit}},
		Subtotal: 30,
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, "Visitante", order.Customer)
	assert.Equal(t, DefaultDeliveryMethod, order.DeliveryMethod)
	assert.Equal(t, 0.0, order.ShippingCost)
	assert.Equal(t, 30.0, order.Total)
	assert.Nil(t, order.ProfileID)
	assert.Equal(t, models.Address{}, order.Address)
}

func TestBuildOrderItemsSnapshot(t *testing.T) {
	order, err := BuildOrder(CreateOrderInput{
		Items: []models.CartItem{
			{Name: "Veludo Azul", Price: 120.50, Quantity: 3.5, Type: models.TypeMeter, Color: "Azul Marinho"},
			{Name: "Espuma D28", Price: 80, Quantity: 2, Type: models.TypeUnit, Color: "Padrão"},
		},
		Subtotal: 581.75,
	}, nil)

	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Veludo Azul", order.Items[0].ProductName)
	assert.Equal(t, 3.5, order.Items[0].Quantity)
	assert.Equal(t, "Azul Marinho", order.Items[0].Color)
	assert.Equal(t, order.ID, order.Items[0].OrderID)
	assert.NotEqual(t, order.Items[0].ID, order.Items[1].ID)
}

func TestBuildOrderAddressPrecedence(t *testing.T) {
	profileID := gocql.TimeUUID()
	explicit := &models.Address{Street: "Rua das Flores", Number: "100", City: "Curitiba"}
	stored := &models.Address{Street: "Av. Paraná", Number: "2500", City: "Curitiba"}
	items := []models.CartItem{{Name: "Tapete", Price: 200, Quantity: 1, Type: models.TypeUnit}}

	// Endereço explícito ganha do endereço do perfil
	order, err := BuildOrder(CreateOrderInput{
		Items: items, Subtotal: 200, ProfileID: &profileID, Address: explicit,
	}, stored)
	require.NoError(t, err)
	assert.Equal(t, "Rua das Flores", order.Address.Street)

	// Sem endereço explícito, copia o do perfil
	order, err = BuildOrder(CreateOrderInput{
		Items: items, Subtotal: 200, ProfileID: &profileID,
	}, stored)
	require.NoError(t, err)
	assert.Equal(t, "Av. Paraná", order.Address.Street)

	// Visitante sem perfil: fica sem endereço
	order, err = BuildOrder(CreateOrderInput{Items: items, Subtotal: 200}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.Address{}, order.Address)
}

func TestBuildOrderValidation(t *testing.T) {
	_, err := BuildOrder(CreateOrderInput{Subtotal: 10}, nil)
	assert.ErrorIs(t, err, ErrEmptyCart)

	items := []models.CartItem{{Name: "Linho", Price: 10, Quantity: 1, Type: models.TypeMeter}}
	_, err = BuildOrder(CreateOrderInput{Items: items, Subtotal: -1}, nil)
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = BuildOrder(CreateOrderInput{Items: items, Subtotal: 10, ShippingCost: -5}, nil)
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestShouldApplyStatus(t *testing.T) {
	tests := []struct {
		name    string
		current string
		next    string
		want    bool
	}{
		{"pagamento confirmado", models.StatusPendente, models.StatusPago, true},
		{"notificação PAID reenviada", models.StatusPago, models.StatusPago, false},
		{"notificação pendente reenviada", models.StatusPendente, models.StatusPendente, false},
		{"estorno após pago", models.StatusPago, models.StatusCancelado, true},
		{"cancelamento repetido", models.StatusCancelado, models.StatusCancelado, false},
		{"status fora do vocabulário", models.StatusPendente, "APPROVED", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldApplyStatus(tt.current, tt.next))
		})
	}
}

func TestValidateStatusUpdate(t *testing.T) {
	assert.NoError(t, ValidateStatusUpdate("abc", models.StatusPago))
	assert.NoError(t, ValidateStatusUpdate("abc", models.StatusCancelado))
	assert.ErrorIs(t, ValidateStatusUpdate("", models.StatusPago), ErrMissingOrderRef)
	assert.ErrorIs(t, ValidateStatusUpdate("abc", ""), ErrMissingOrderRef)
	assert.ErrorIs(t, ValidateStatusUpdate("abc", "qualquer-coisa"), ErrInvalidStatus)
}
