package models

// ShippingCompany identifica quem faz a entrega
type ShippingCompany struct {
	Name string `json:"name"`
}

// ShippingOption é uma opção de frete retornada pela cotação
type ShippingOption struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Price        float64         `json:"price"`
	DeliveryTime int             `json:"delivery_time"` // dias úteis
	Company      ShippingCompany `json:"company"`
	// Preço a combinar fora do site (WhatsApp); Price fica zerado
	QuoteRequired bool `json:"quote_required,omitempty"`
}
