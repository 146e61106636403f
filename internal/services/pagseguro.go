package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Kaiser-luz/rio-verde-loja/internal/models"
)

const pagSeguroSandboxURL = "https://sandbox.api.pagseguro.com"

var (
	ErrMissingToken   = errors.New("PAGSEGURO_TOKEN não configurado")
	ErrMissingPayLink = errors.New("link de redirecionamento não encontrado")
)

// PagSeguroClient fala com o Checkout Pro do PagSeguro (API v4)
type PagSeguroClient struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// NewPagSeguroClient falha rápido quando o token não está configurado:
// nenhuma chamada de rede é tentada sem credencial.
func NewPagSeguroClient() (*PagSeguroClient, error) {
	token := os.Getenv("PAGSEGURO_TOKEN")
	if token == "" {
		return nil, ErrMissingToken
	}

	baseURL := os.Getenv("PAGSEGURO_API_URL")
	if baseURL == "" {
		baseURL = pagSeguroSandboxURL
	}

	return &PagSeguroClient{
		BaseURL: baseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}, nil
}

type psPhone struct {
	Country string `json:"country"`
	Area    string `json:"area"`
	Number  string `json:"number"`
	Type    string `json:"type"`
}

type psCustomer struct {
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	TaxID  string    `json:"tax_id"`
	Phones []psPhone `json:"phones"`
}

type psItem struct {
	ReferenceID string `json:"reference_id"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	UnitAmount  int    `json:"unit_amount"` // centavos
}

type psLink struct {
	Rel    string `json:"rel"`
	Href   string `json:"href"`
	Method string `json:"method"`
}

type psCheckoutResponse struct {
	ID            string   `json:"id"`
	Links         []psLink `json:"links"`
	Message       string   `json:"message"`
	ErrorMessages []struct {
		Description string `json:"description"`
	} `json:"error_messages"`
}

// PagSeguroOrder é a resposta da consulta autoritativa de pedido
type PagSeguroOrder struct {
	ID          string `json:"id"`
	ReferenceID string `json:"reference_id"`
	Status      string `json:"status"`
	Charges     []struct {
		Status string `json:"status"`
	} `json:"charges"`
	QRCodes []struct {
		Text string `json:"text"`
	} `json:"qr_codes"`
}

// buildCheckoutItems converte os itens do pedido para o formato do
// PagSeguro. O processador exige quantidade inteira, então itens
// fracionários (venda por metro) viram uma unidade com o valor total da
// linha.
func buildCheckoutItems(order models.Order) []psItem {
	items := make([]psItem, 0, len(order.Items)+1)

	for _, item := range order.Items {
		qty := item.Quantity
		if qty == math.Trunc(qty) && qty >= 1 {
			items = append(items, psItem{
				ReferenceID: item.ID.String(),
				Name:        item.ProductName,
				Quantity:    int(qty),
				UnitAmount:  int(math.Round(item.Price * 100)),
			})
		} else {
			items = append(items, psItem{
				ReferenceID: item.ID.String(),
				Name:        item.ProductName,
				Quantity:    1,
				UnitAmount:  int(math.Round(item.Price * qty * 100)),
			})
		}
	}

	if order.ShippingCost > 0 {
		items = append(items, psItem{
			ReferenceID: "frete",
			Name:        "Frete - " + order.DeliveryMethod,
			Quantity:    1,
			UnitAmount:  int(math.Round(order.ShippingCost * 100)),
		})
	}

	return items
}

// customerPayload prefere os dados reais do perfil; sem perfil, usa os
// valores de visitante que o sandbox aceita (ele rejeita campos malformados)
func customerPayload(profile *models.Profile) psCustomer {
	customer := psCustomer{
		Name:   "Cliente Teste Sandbox",
		Email:  "comprador@sandbox.pagseguro.com.br",
		TaxID:  "12345678909",
		Phones: []psPhone{{Country: "55", Area: "11", Number: "999999999", Type: "MOBILE"}},
	}

	if profile == nil {
		return customer
	}

	if profile.Name != "" {
		customer.Name = profile.Name
	}
	if profile.Email != "" {
		customer.Email = profile.Email
	}
	if profile.CNPJ != "" {
		customer.TaxID = onlyDigits(profile.CNPJ)
	} else if profile.CPF != "" {
		customer.TaxID = onlyDigits(profile.CPF)
	}
	if phone := onlyDigits(profile.Phone); len(phone) >= 10 {
		customer.Phones = []psPhone{{Country: "55", Area: phone[:2], Number: phone[2:], Type: "MOBILE"}}
	}

	return customer
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CreateCheckout cria a sessão de pagamento e devolve a URL de redirect
func (c *PagSeguroClient) CreateCheckout(order models.Order, profile *models.Profile, origin string) (string, error) {
	payload := map[string]interface{}{
		"reference_id":    order.ID.String(),
		"expiration_date": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		"customer":        customerPayload(profile),
		"items":           buildCheckoutItems(order),
	}

	// O PagSeguro bloqueia redirect para http://localhost no /checkouts
	if strings.HasPrefix(origin, "https://") {
		payload["redirect_url"] = origin + "/sucesso"
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+"/checkouts", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("x-api-version", "4.0")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	var data psCheckoutResponse
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return "", err
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg := data.Message
		if len(data.ErrorMessages) > 0 {
			msg = data.ErrorMessages[0].Description
		}
		if msg == "" {
			msg = "erro desconhecido"
		}
		log.Printf("❌ ERRO PAGSEGURO (%d): %s", res.StatusCode, msg)
		return "", fmt.Errorf("PagSeguro: %s", msg)
	}

	for _, link := range data.Links {
		if link.Rel == "PAY" {
			return link.Href, nil
		}
	}
	return "", ErrMissingPayLink
}

// GetOrder consulta o status autoritativo de um pedido no PagSeguro
func (c *PagSeguroClient) GetOrder(pagSeguroID string) (*PagSeguroOrder, error) {
	req, err := http.NewRequest(http.MethodGet, c.BaseURL+"/orders/"+pagSeguroID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("x-api-version", "4.0")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("PagSeguro respondeu %d na consulta do pedido", res.StatusCode)
	}

	var order PagSeguroOrder
	if err := json.NewDecoder(res.Body).Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ChargeStatus devolve o status da cobrança (o status do pedido é o fallback)
func (o *PagSeguroOrder) ChargeStatus() string {
	if len(o.Charges) > 0 {
		return o.Charges[0].Status
	}
	return o.Status
}

// PixCode devolve o "copia e cola" quando o pagamento gerou PIX
func (o *PagSeguroOrder) PixCode() string {
	if len(o.QRCodes) > 0 {
		return o.QRCodes[0].Text
	}
	return ""
}

// MapPagSeguroStatus traduz o status do processador para o nosso vocabulário
func MapPagSeguroStatus(status string) string {
	switch status {
	case "PAID":
		return models.StatusPago
	case "CANCELED", "DECLINED":
		return models.StatusCancelado
	case "IN_ANALYSIS":
		return models.StatusPendente
	default:
		return models.StatusPendente
	}
}
