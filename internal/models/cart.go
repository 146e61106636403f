package models

// CartItem é a linha do carrinho enviada pelo frontend. O carrinho vive
// no navegador; só chega ao servidor na cotação de frete e no checkout.
type CartItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
	Type     string  `json:"type"` // "meter" ou "unit"
	Color    string  `json:"color,omitempty"`
}
