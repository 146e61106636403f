package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Kaiser-luz/rio-verde-loja/internal/models"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder() models.Order {
	return models.Order{
		ID:             gocql.TimeUUID(),
		Customer:       "Maria",
		DeliveryMethod: "Entrega Expressa (Moto)",
		ShippingCost:   15.00,
		Subtotal:       100.00,
		Total:          115.00,
		Status:         models.StatusPendente,
		Items: []models.OrderItem{
			{ID: gocql.TimeUUID(), ProductName: "Linho Rústico", Price: 89.90, Quantity: 2.5},
			{ID: gocql.TimeUUID(), ProductName: "Espuma D33", Price: 45.00, Quantity: 2},
		},
	}
}

func TestNewPagSeguroClientMissingToken(t *testing.T) {
	t.Setenv("PAGSEGURO_TOKEN", "")
	_, err := NewPagSeguroClient()
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestBuildCheckoutItems(t *testing.T) {
	items := buildCheckoutItems(testOrder())
	require.Len(t, items, 3)

	// Quantidade fracionária (2,5m) colapsa em 1 unidade com o valor da linha
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 22475, items[0].UnitAmount) // 89,90 * 2,5 em centavos

	// Quantidade inteira segue normal
	assert.Equal(t, 2, items[1].Quantity)
	assert.Equal(t, 4500, items[1].UnitAmount)

	// Frete vira um item sintético
	assert.Equal(t, "Frete - Entrega Expressa (Moto)", items[2].Name)
	assert.Equal(t, 1, items[2].Quantity)
	assert.Equal(t, 1500, items[2].UnitAmount)
}

func TestBuildCheckoutItemsNoShipping(t *testing.T) {
	order := testOrder()
	order.ShippingCost = 0
	items := buildCheckoutItems(order)
	require.Len(t, items, 2)
}

func TestCustomerPayload(t *testing.T) {
	// Visitante: valores aceitos pelo sandbox
	guest := customerPayload(nil)
	assert.Equal(t, "Cliente Teste Sandbox", guest.Name)
	assert.Equal(t, "12345678909", guest.TaxID)

	// Perfil completo: dados reais, CNPJ ganha do CPF
	profile := &models.Profile{
		Name:  "Estofaria Silva",
		Email: "contato@estofariasilva.com.br",
		CPF:   "111.222.333-44",
		CNPJ:  "12.345.678/0001-90",
		Phone: "(41) 98888-7777",
	}
	c := customerPayload(profile)
	assert.Equal(t, "Estofaria Silva", c.Name)
	assert.Equal(t, "12345678000190", c.TaxID)
	require.Len(t, c.Phones, 1)
	assert.Equal(t, "41", c.Phones[0].Area)
	assert.Equal(t, "988887777", c.Phones[0].Number)
}

func TestCreateCheckoutSuccess(t *testing.T) {
	order := testOrder()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/checkouts", r.URL.Path)
		assert.Equal(t, "Bearer token-teste", r.Header.Get("Authorization"))
		assert.Equal(t, "4.0", r.Header.Get("x-api-version"))

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, order.ID.String(), payload["reference_id"])
		assert.NotContains(t, payload, "redirect_url") // origem http não manda redirect
		assert.NotEmpty(t, payload["expiration_date"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id": "CHEC_123",
			"links": []map[string]string{
				{"rel": "SELF", "href": "https://sandbox.api.pagseguro.com/checkouts/CHEC_123"},
				{"rel": "PAY", "href": "https://sandbox.pagseguro.com.br/pagar/CHEC_123", "method": "GET"},
			},
		})
	}))
	defer server.Close()

	client := &PagSeguroClient{BaseURL: server.URL, Token: "token-teste", HTTP: &http.Client{Timeout: 5 * time.Second}}

	url, err := client.CreateCheckout(order, nil, "http://localhost:3000")
	require.NoError(t, err)
	assert.Equal(t, "https://sandbox.pagseguro.com.br/pagar/CHEC_123", url)
}

func TestCreateCheckoutRedirectOnHTTPS(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "https://rioverdetecidos.com.br/sucesso", payload["redirect_url"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"links": []map[string]string{{"rel": "PAY", "href": "https://pagar.example/x"}},
		})
	}))
	defer server.Close()

	client := &PagSeguroClient{BaseURL: server.URL, Token: "t", HTTP: server.Client()}
	_, err := client.CreateCheckout(testOrder(), nil, "https://rioverdetecidos.com.br")
	require.NoError(t, err)
}

func TestCreateCheckoutProcessorError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error_messages": []map[string]string{
				{"description": "invalid_customer_tax_id"},
				{"description": "outro_erro"},
			},
		})
	}))
	defer server.Close()

	client := &PagSeguroClient{BaseURL: server.URL, Token: "t", HTTP: server.Client()}
	_, err := client.CreateCheckout(testOrder(), nil, "http://localhost:3000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_customer_tax_id") // primeira mensagem reportada
}

func TestCreateCheckoutMissingPayLink(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"links": []map[string]string{{"rel": "SELF", "href": "https://x"}},
		})
	}))
	defer server.Close()

	client := &PagSeguroClient{BaseURL: server.URL, Token: "t", HTTP: server.Client()}
	_, err := client.CreateCheckout(testOrder(), nil, "http://localhost:3000")
	assert.ErrorIs(t, err, ErrMissingPayLink)
}

func TestGetOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/ORDE_ABC", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":           "ORDE_ABC",
			"reference_id": "pedido-1",
			"status":       "PAID",
			"charges":      []map[string]string{{"status": "PAID"}},
			"qr_codes":     []map[string]string{{"text": "00020126...pix"}},
		})
	}))
	defer server.Close()

	client := &PagSeguroClient{BaseURL: server.URL, Token: "t", HTTP: server.Client()}
	order, err := client.GetOrder("ORDE_ABC")
	require.NoError(t, err)
	assert.Equal(t, "pedido-1", order.ReferenceID)
	assert.Equal(t, "PAID", order.ChargeStatus())
	assert.Equal(t, "00020126...pix", order.PixCode())
}

func TestGetOrderFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := &PagSeguroClient{BaseURL: server.URL, Token: "t", HTTP: server.Client()}
	_, err := client.GetOrder("ORDE_ABC")
	assert.Error(t, err)
}

func TestMapPagSeguroStatus(t *testing.T) {
	testCases := []struct {
		processor string
		local     string
	}{
		{"PAID", models.StatusPago},
		{"CANCELED", models.StatusCancelado},
		{"DECLINED", models.StatusCancelado},
		{"IN_ANALYSIS", models.StatusPendente},
		{"WAITING", models.StatusPendente},
		{"", models.StatusPendente},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.local, MapPagSeguroStatus(tc.processor), "status %q", tc.processor)
	}
}
