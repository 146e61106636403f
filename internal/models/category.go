package models

// Category agrupa produtos e define o tipo de venda herdado por eles
type Category struct {
	ID   string `json:"id"` // slug gerado a partir do nome (ex: "linho-puro")
	Name string `json:"name"`
	Type string `json:"type"` // "meter" ou "unit"
}
