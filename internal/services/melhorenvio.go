package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/Kaiser-luz/rio-verde-loja/internal/models"
)

const melhorEnvioDefaultURL = "https://melhorenvio.com.br"

// MelhorEnvioClient cota fretes nacionais na API do Melhor Envio.
// Uma única tentativa por cotação; quem chama decide o fallback.
type MelhorEnvioClient struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func NewMelhorEnvioClient(token string) *MelhorEnvioClient {
	baseURL := os.Getenv("MELHORENVIO_API_URL")
	if baseURL == "" {
		baseURL = melhorEnvioDefaultURL
	}
	return &MelhorEnvioClient{
		BaseURL: baseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type meProduct struct {
	ID       string  `json:"id"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Length   int     `json:"length"`
	Weight   float64 `json:"weight"`
	Quantity int     `json:"quantity"`
}

type meQuote struct {
	ID           int         `json:"id"`
	Name         string      `json:"name"`
	Price        json.Number `json:"price"` // a API devolve string
	DeliveryTime int         `json:"delivery_time"`
	Company      struct {
		Name string `json:"name"`
	} `json:"company"`
	Error string `json:"error,omitempty"`
}

// Calculate envia o carrinho para /api/v2/me/shipment/calculate
func (c *MelhorEnvioClient) Calculate(cep string, items []models.CartItem) ([]models.ShippingOption, error) {
	destination, err := CleanCEP(cep)
	if err != nil {
		return nil, err
	}

	products := make([]meProduct, 0, len(items))
	for i, item := range items {
		qty := int(math.Ceil(item.Quantity))
		if qty < 1 {
			qty = 1
		}
		// Dimensões genéricas de rolo/caixa; o peso real importa mais
		products = append(products, meProduct{
			ID:       strconv.Itoa(i + 1),
			Width:    30,
			Height:   30,
			Length:   60,
			Weight:   0.5 * item.Quantity,
			Quantity: qty,
		})
	}

	payload := map[string]interface{}{
		"from":     map[string]string{"postal_code": strconv.Itoa(OriginCEP)},
		"to":       map[string]string{"postal_code": fmt.Sprintf("%08d", destination)},
		"products": products,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+"/api/v2/me/shipment/calculate", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("melhor envio respondeu %d", res.StatusCode)
	}

	var quotes []meQuote
	if err := json.NewDecoder(res.Body).Decode(&quotes); err != nil {
		return nil, err
	}

	options := make([]models.ShippingOption, 0, len(quotes))
	for _, q := range quotes {
		if q.Error != "" {
			continue
		}
		price, err := q.Price.Float64()
		if err != nil {
			continue
		}
		options = append(options, models.ShippingOption{
			ID:           "me-" + strconv.Itoa(q.ID),
			Name:         q.Name,
			Price:        price,
			DeliveryTime: q.DeliveryTime,
			Company:      models.ShippingCompany{Name: q.Company.Name},
		})
	}

	if len(options) == 0 {
		return nil, errors.New("nenhuma transportadora disponível")
	}
	return options, nil
}
