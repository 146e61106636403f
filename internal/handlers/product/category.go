package product

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"github.com/Kaiser-luz/rio-verde-loja/internal/cache"
	"github.com/Kaiser-luz/rio-verde-loja/internal/database"
	"github.com/Kaiser-luz/rio-verde-loja/internal/models"
	"github.com/Kaiser-luz/rio-verde-loja/internal/utils"
)

// 🟢 Criar categoria (admin). O id é o slug do nome.
func CreateCategory(c *gin.Context) {
	var body struct {
		Name string `json:"name" binding:"required"`
		Type string `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if body.Type != models.TypeMeter && body.Type != models.TypeUnit {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tipo deve ser 'meter' ou 'unit'"})
		return
	}

	slug := utils.Slugify(body.Name)
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nome de categoria inválido"})
		return
	}

	// Slug repetido significa categoria duplicada
	var existing string
	err := database.Scylla.Query(`SELECT id FROM categories WHERE id = ?`, slug).Scan(&existing)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Categoria já existe"})
		return
	}
	if err != gocql.ErrNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	category := models.Category{ID: slug, Name: body.Name, Type: body.Type}
	err = database.Scylla.Query(
		`INSERT INTO categories (id, name, type) VALUES (?, ?, ?)`,
		category.ID, category.Name, category.Type,
	).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cache.InvalidateCatalog(c.Request.Context())
	c.JSON(http.StatusCreated, category)
}

func GetCategories(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, ok := cache.GetCategoryList(ctx); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	iter := database.Scylla.Query(`SELECT id, name, type FROM categories`).Iter()
	categories := []models.Category{}
	var cat models.Category
	for iter.Scan(&cat.ID, &cat.Name, &cat.Type) {
		categories = append(categories, cat)
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cache.SetCategoryList(ctx, categories)
	c.JSON(http.StatusOK, categories)
}

// DeleteCategory recusa a remoção enquanto houver produtos apontando
// para a categoria
func DeleteCategory(c *gin.Context) {
	slug := c.Param("id")

	iter := database.Scylla.Query(
		`SELECT product_id FROM products WHERE category = ? LIMIT 1`, slug,
	).Iter()
	var productID gocql.UUID
	inUse := iter.Scan(&productID)
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if inUse {
		c.JSON(http.StatusConflict, gin.H{"error": "Categoria possui produtos cadastrados"})
		return
	}

	if err := database.Scylla.Query(`DELETE FROM categories WHERE id = ?`, slug).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cache.InvalidateCatalog(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Categoria removida"})
}
