package models

import (
	"encoding/json"
	"time"

	"github.com/gocql/gocql"
)

// Tipos de venda (herdados da categoria na criação do produto)
const (
	TypeMeter = "meter" // venda por metro, quantidade fracionária
	TypeUnit  = "unit"  // venda por unidade inteira
)

// ProductColor representa uma variação de cor do produto
type ProductColor struct {
	Name  string `json:"name"`
	Hex   string `json:"hex"`
	Image string `json:"image,omitempty"` // foto opcional da cor
}

type Product struct {
	ID       gocql.UUID `json:"id"`
	Name     string     `json:"name"`
	Category string     `json:"category"` // slug da categoria
	Price    float64    `json:"price"`
	// Preço especial, visível apenas para estofadores aprovados
	PriceUpholsterer *float64       `json:"price_upholsterer,omitempty"`
	Stock            float64        `json:"stock"` // fracionário para venda por metro
	Type             string         `json:"type"`
	Image            string         `json:"image"`
	DatasheetURL     string         `json:"datasheet_url,omitempty"` // ficha técnica em PDF
	Colors           []ProductColor `json:"colors"`
	Width            float64        `json:"width,omitempty"`       // largura do rolo em metros
	Weight           float64        `json:"weight,omitempty"`      // kg por metro/unidade
	Composition      string         `json:"composition,omitempty"` // composição do tecido
	CreatedAt        time.Time      `json:"created_at"`
}

var defaultColors = []ProductColor{{Name: "Padrão", Hex: "#FFFFFF"}}

// ColorsJSON serializa as cores para a coluna text do Scylla
func (p *Product) ColorsJSON() string {
	colors := p.Colors
	if len(colors) == 0 {
		colors = defaultColors
	}
	data, _ := json.Marshal(colors)
	return string(data)
}

// ParseColors preenche Colors a partir do JSON armazenado
func (p *Product) ParseColors(raw string) {
	if raw == "" || json.Unmarshal([]byte(raw), &p.Colors) != nil || len(p.Colors) == 0 {
		p.Colors = defaultColors
	}
}
