package services

import (
	"strconv"

	"github.com/Kaiser-luz/rio-verde-loja/internal/models"
)

// Colunas fixas da planilha de estoque (contrato de duas vias com o admin)
var ExcelHeader = []string{
	"Nome", "Preco", "Estoque", "Categoria_ID",
	"Tipo_Venda", "Imagem_URL", "Cor_Nome", "Cor_Hex",
}

// Nome da aba da planilha exportada
const ExcelSheetName = "Produtos"

// ImportedProduct é uma linha da planilha já interpretada
type ImportedProduct struct {
	Name     string
	Price    float64
	Stock    float64
	Category string
	Type     string // "meter"/"unit" da planilha; vazio quando a célula é inválida
	Image    string
	Color    models.ProductColor
}

// ProductToRow converte o produto para a linha da planilha. Só a primeira
// cor é exportada (limitação do formato tabular).
func ProductToRow(p models.Product) []interface{} {
	color := models.ProductColor{Name: "Padrão", Hex: "#FFFFFF"}
	if len(p.Colors) > 0 {
		color = p.Colors[0]
	}

	return []interface{}{
		p.Name, p.Price, p.Stock, p.Category,
		p.Type, p.Image, color.Name, color.Hex,
	}
}

// HeaderIndex mapeia o cabeçalho da planilha para índices de coluna
func HeaderIndex(row []string) map[string]int {
	index := make(map[string]int, len(row))
	for i, name := range row {
		index[name] = i
	}
	return index
}

// RowToImport interpreta uma linha da planilha; devolve false quando a
// linha não tem Nome (linhas vazias são ignoradas, não erram)
func RowToImport(header map[string]int, row []string) (ImportedProduct, bool) {
	cell := func(name string) string {
		i, ok := header[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	name := cell("Nome")
	if name == "" {
		return ImportedProduct{}, false
	}

	price, _ := strconv.ParseFloat(cell("Preco"), 64)
	stock, _ := strconv.ParseFloat(cell("Estoque"), 64)

	category := cell("Categoria_ID")
	if category == "" {
		category = "outros"
	}

	// Tipo_Venda fecha o ciclo exportar->importar: quando a categoria da
	// linha não existe mais, é ele que preserva a unidade de venda
	saleType := cell("Tipo_Venda")
	if saleType != models.TypeMeter && saleType != models.TypeUnit {
		saleType = ""
	}

	image := cell("Imagem_URL")
	if image == "" {
		image = "https://picsum.photos/800/600"
	}

	color := models.ProductColor{Name: cell("Cor_Nome"), Hex: cell("Cor_Hex")}
	if color.Name == "" {
		color.Name = "Padrão"
	}
	if color.Hex == "" {
		color.Hex = "#FFFFFF"
	}

	return ImportedProduct{
		Name:     name,
		Price:    price,
		Stock:    stock,
		Category: category,
		Type:     saleType,
		Image:    image,
		Color:    color,
	}, true
}
