package product

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"github.com/Kaiser-luz/rio-verde-loja/internal/cache"
	"github.com/Kaiser-luz/rio-verde-loja/internal/database"
	"github.com/Kaiser-luz/rio-verde-loja/internal/services"
)

// 🪣 Sobe a imagem do produto para o MinIO e devolve a URL pública
func UploadProductImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Arquivo 'image' ausente"})
		return
	}

	objectName := fmt.Sprintf("products/%s%s", uuid.NewString(), filepath.Ext(fileHeader.Filename))
	url, err := services.UploadFile(objectName, fileHeader)
	if err != nil {
		log.Printf("❌ Erro no upload para o MinIO: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao salvar imagem"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// 📄 Gera a ficha técnica em PDF, guarda no bucket e grava a URL no
// produto
func GenerateDatasheet(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de produto inválido"})
		return
	}

	p, err := fetchProduct(id)
	if err == gocql.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produto não encontrado"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	pdf, err := services.RenderDatasheetPDF(p)
	if err != nil {
		log.Printf("❌ Erro ao renderizar ficha técnica de %s: %v", p.Name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao gerar ficha técnica"})
		return
	}

	objectName := fmt.Sprintf("datasheets/%s.pdf", p.ID.String())
	url, err := services.UploadBytes(objectName, "application/pdf", pdf)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao salvar ficha técnica"})
		return
	}

	err = database.Scylla.Query(
		`UPDATE products SET datasheet_url = ? WHERE product_id = ?`, url, p.ID,
	).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cache.InvalidateCatalog(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"datasheet_url": url})
}
