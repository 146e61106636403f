package product

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/xuri/excelize/v2"

	"github.com/Kaiser-luz/rio-verde-loja/internal/cache"
	"github.com/Kaiser-luz/rio-verde-loja/internal/database"
	"github.com/Kaiser-luz/rio-verde-loja/internal/models"
	"github.com/Kaiser-luz/rio-verde-loja/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// 📤 Exporta o catálogo inteiro em xlsx para edição offline
func ExportProducts(c *gin.Context) {
	iter := database.Scylla.Query(`SELECT ` + productColumns + ` FROM products`).Iter()
	products := scanProducts(iter)
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet, err := f.NewSheet(services.ExcelSheetName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	f.SetActiveSheet(sheet)
	f.DeleteSheet("Sheet1")

	header := make([]interface{}, len(services.ExcelHeader))
	for i, h := range services.ExcelHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(services.ExcelSheetName, "A1", &header); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	for i, p := range products {
		row := services.ProductToRow(p)
		celula, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(services.ExcelSheetName, celula, &row); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("estoque-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// 📥 Importa produtos de uma planilha xlsx. Linhas sem Nome são
// ignoradas; as demais criam produtos novos.
func ImportProducts(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Arquivo 'file' ausente"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Planilha inválida"})
		return
	}
	defer f.Close()

	sheet := services.ExcelSheetName
	rows, err := f.GetRows(sheet)
	if err != nil {
		// aceita planilhas com a aba padrão renomeada
		sheet = f.GetSheetName(0)
		rows, err = f.GetRows(sheet)
	}
	if err != nil || len(rows) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Planilha vazia"})
		return
	}

	header := services.HeaderIndex(rows[0])
	imported := 0
	skipped := 0

	for _, row := range rows[1:] {
		item, ok := services.RowToImport(header, row)
		if !ok {
			skipped++
			continue
		}

		// herda o tipo da categoria quando ela existe; senão vale o
		// Tipo_Venda da planilha, para a reimportação não trocar a
		// unidade de venda do produto
		saleType := item.Type
		var catType string
		if err := database.Scylla.Query(
			`SELECT type FROM categories WHERE id = ?`, item.Category,
		).Scan(&catType); err == nil && catType != "" {
			saleType = catType
		}
		if saleType == "" {
			saleType = models.TypeMeter
		}

		p := models.Product{
			ID:        gocql.TimeUUID(),
			Name:      item.Name,
			Category:  item.Category,
			Price:     item.Price,
			Stock:     item.Stock,
			Type:      saleType,
			Image:     item.Image,
			Colors:    []models.ProductColor{item.Color},
			CreatedAt: time.Now(),
		}

		err := database.Scylla.Query(
			`INSERT INTO products (`+productColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.Category, p.Price, p.PriceUpholsterer, p.Stock, p.Type,
			p.Image, p.DatasheetURL, p.ColorsJSON(), p.Width, p.Weight, p.Composition, p.CreatedAt,
		).Exec()
		if err != nil {
			log.Printf("❌ Erro ao importar linha '%s': %v", item.Name, err)
			skipped++
			continue
		}

		go services.IndexProduct(p)
		imported++
	}

	cache.InvalidateCatalog(c.Request.Context())
	log.Printf("📥 Importação concluída: %d produtos, %d linhas ignoradas", imported, skipped)

	c.JSON(http.StatusOK, gin.H{"imported": imported, "skipped": skipped})
}
