package services

import (
	"fmt"
	"testing"

	"github.com/Kaiser-luz/rio-verde-loja/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductToRow(t *testing.T) {
	p := models.Product{
		Name:     "Linho Rústico Natural",
		Category: "linho",
		Price:    89.90,
		Stock:    120.5,
		Type:     models.TypeMeter,
		Image:    "https://cdn.example/linho.jpg",
		Colors: []models.ProductColor{
			{Name: "Natural", Hex: "#E3DAC9"},
			{Name: "Areia", Hex: "#C2B280"},
		},
	}

	row := ProductToRow(p)
	require.Len(t, row, len(ExcelHeader))
	assert.Equal(t, "Linho Rústico Natural", row[0])
	assert.Equal(t, 89.90, row[1])
	assert.Equal(t, 120.5, row[2])
	assert.Equal(t, "linho", row[3])
	assert.Equal(t, models.TypeMeter, row[4])
	// Só a primeira cor vai para a planilha
	assert.Equal(t, "Natural", row[6])
	assert.Equal(t, "#E3DAC9", row[7])
}

func TestProductToRowWithoutColors(t *testing.T) {
	row := ProductToRow(models.Product{Name: "Cola Spray", Type: models.TypeUnit})
	assert.Equal(t, "Padrão", row[6])
	assert.Equal(t, "#FFFFFF", row[7])
}

func TestRowToImport(t *testing.T) {
	header := HeaderIndex(ExcelHeader)

	imported, ok := RowToImport(header, []string{
		"Veludo Premium", "149.90", "80", "veludo",
		"meter", "https://cdn.example/veludo.jpg", "Esmeralda", "#2E8B57",
	})
	require.True(t, ok)
	assert.Equal(t, "Veludo Premium", imported.Name)
	assert.Equal(t, 149.90, imported.Price)
	assert.Equal(t, 80.0, imported.Stock)
	assert.Equal(t, "veludo", imported.Category)
	assert.Equal(t, "Esmeralda", imported.Color.Name)
}

func TestRowToImportSkipsEmptyName(t *testing.T) {
	header := HeaderIndex(ExcelHeader)
	_, ok := RowToImport(header, []string{"", "10", "5"})
	assert.False(t, ok)

	_, ok = RowToImport(header, []string{})
	assert.False(t, ok)
}

func TestRowToImportDefaults(t *testing.T) {
	header := HeaderIndex(ExcelHeader)
	imported, ok := RowToImport(header, []string{"Tapete Persa"})
	require.True(t, ok)

	assert.Equal(t, 0.0, imported.Price)
	assert.Equal(t, "outros", imported.Category)
	assert.Equal(t, "https://picsum.photos/800/600", imported.Image)
	assert.Equal(t, "Padrão", imported.Color.Name)
	assert.Equal(t, "#FFFFFF", imported.Color.Hex)
}

func TestRowToImportRoundTripKeepsSaleType(t *testing.T) {
	header := HeaderIndex(ExcelHeader)

	// exportar e reimportar um produto por unidade não pode virar venda
	// por metro, mesmo que a categoria da linha não exista mais
	p := models.Product{
		Name:     "Espuma D33",
		Category: "espumas-antigas",
		Price:    45.00,
		Stock:    12,
		Type:     models.TypeUnit,
	}

	row := ProductToRow(p)
	cells := make([]string, len(row))
	for i, v := range row {
		cells[i] = fmt.Sprint(v)
	}

	imported, ok := RowToImport(header, cells)
	require.True(t, ok)
	assert.Equal(t, models.TypeUnit, imported.Type)
}

func TestRowToImportRejectsUnknownSaleType(t *testing.T) {
	header := HeaderIndex(ExcelHeader)

	imported, ok := RowToImport(header, []string{
		"Curso de Costura", "99.90", "1", "servicos", "assinatura", "", "", "",
	})
	require.True(t, ok)
	assert.Empty(t, imported.Type)
}

func TestRowToImportShuffledHeader(t *testing.T) {
	header := HeaderIndex([]string{"Preco", "Nome", "Estoque"})
	imported, ok := RowToImport(header, []string{"25.50", "Fita de Borda", "300"})
	require.True(t, ok)
	assert.Equal(t, "Fita de Borda", imported.Name)
	assert.Equal(t, 25.50, imported.Price)
	assert.Equal(t, 300.0, imported.Stock)
}
