package product

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"github.com/Kaiser-luz/rio-verde-loja/internal/cache"
	"github.com/Kaiser-luz/rio-verde-loja/internal/database"
	"github.com/Kaiser-luz/rio-verde-loja/internal/models"
	"github.com/Kaiser-luz/rio-verde-loja/internal/services"
)

const productColumns = `product_id, name, category, price, price_upholsterer, stock, type, image, datasheet_url, colors, width, weight, composition, created_at`

func scanProducts(iter *gocql.Iter) []models.Product {
	products := []models.Product{}
	var (
		p      models.Product
		colors string
	)
	for iter.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.PriceUpholsterer,
		&p.Stock, &p.Type, &p.Image, &p.DatasheetURL, &colors,
		&p.Width, &p.Weight, &p.Composition, &p.CreatedAt) {
		p.ParseColors(colors)
		products = append(products, p)
		p = models.Product{}
	}
	return products
}

func fetchProduct(id gocql.UUID) (models.Product, error) {
	var (
		p      models.Product
		colors string
	)
	err := database.Scylla.Query(
		`SELECT `+productColumns+` FROM products WHERE product_id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.PriceUpholsterer,
		&p.Stock, &p.Type, &p.Image, &p.DatasheetURL, &colors,
		&p.Width, &p.Weight, &p.Composition, &p.CreatedAt)
	if err != nil {
		return p, err
	}
	p.ParseColors(colors)
	return p, nil
}

// canSeeTradePrice lê os claims colocados pelo OptionalAuth
func canSeeTradePrice(c *gin.Context) bool {
	role, _ := c.Get("role")
	approved, _ := c.Get("approved")
	return role == models.RoleUpholsterer && approved == true
}

// stripTradePrices remove o preço de estofador antes de responder a
// visitantes e clientes comuns
func stripTradePrices(products []models.Product) []models.Product {
	for i := range products {
		products[i].PriceUpholsterer = nil
	}
	return products
}

// 🟢 Criar produto (admin). O tipo de venda é herdado da categoria.
func CreateProduct(c *gin.Context) {
	var body struct {
		Name             string                `json:"name" binding:"required"`
		CategoryID       string                `json:"category_id" binding:"required"`
		Price            float64               `json:"price" binding:"required"`
		PriceUpholsterer *float64              `json:"price_upholsterer"`
		Stock            float64               `json:"stock"`
		Image            string                `json:"image"`
		Colors           []models.ProductColor `json:"colors"`
		Width            float64               `json:"width"`
		Weight           float64               `json:"weight"`
		Composition      string                `json:"composition"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if body.Price < 0 || body.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Preço e estoque devem ser positivos"})
		return
	}

	// A categoria precisa existir: o produto herda o tipo de venda dela
	var category models.Category
	err := database.Scylla.Query(
		`SELECT id, name, type FROM categories WHERE id = ?`, body.CategoryID,
	).Scan(&category.ID, &category.Name, &category.Type)
	if err == gocql.ErrNotFound {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Categoria não encontrada"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao verificar categoria"})
		return
	}

	p := models.Product{
		ID:               gocql.TimeUUID(),
		Name:             body.Name,
		Category:         category.ID,
		Price:            body.Price,
		PriceUpholsterer: body.PriceUpholsterer,
		Stock:            body.Stock,
		Type:             category.Type,
		Image:            body.Image,
		Colors:           body.Colors,
		Width:            body.Width,
		Weight:           body.Weight,
		Composition:      body.Composition,
		CreatedAt:        time.Now(),
	}

	err = database.Scylla.Query(
		`INSERT INTO products (`+productColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Category, p.Price, p.PriceUpholsterer, p.Stock, p.Type,
		p.Image, p.DatasheetURL, p.ColorsJSON(), p.Width, p.Weight, p.Composition, p.CreatedAt,
	).Exec()
	if err != nil {
		log.Printf("❌ Erro ao inserir produto: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	p.ParseColors(p.ColorsJSON())

	// 🔄 Indexa no Elasticsearch sem bloquear a resposta
	go services.IndexProduct(p)
	cache.InvalidateCatalog(c.Request.Context())

	c.JSON(http.StatusCreated, p)
}

func GetAllProducts(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, ok := cache.GetProductList(ctx); ok {
		if !canSeeTradePrice(c) {
			cached = stripTradePrices(cached)
		}
		c.JSON(http.StatusOK, cached)
		return
	}

	iter := database.Scylla.Query(`SELECT ` + productColumns + ` FROM products`).Iter()
	products := scanProducts(iter)
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cache.SetProductList(ctx, products)

	if !canSeeTradePrice(c) {
		products = stripTradePrices(products)
	}
	c.JSON(http.StatusOK, products)
}

func GetProductByID(c *gin.Context) {
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

	if !canSeeTradePrice(c) {
		p.PriceUpholsterer = nil
	}
	c.JSON(http.StatusOK, p)
}

func GetProductsByCategory(c *gin.Context) {
	slug := c.Param("id")

	iter := database.Scylla.Query(
		`SELECT `+productColumns+` FROM products WHERE category = ?`, slug,
	).Iter()
	products := scanProducts(iter)
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !canSeeTradePrice(c) {
		products = stripTradePrices(products)
	}
	c.JSON(http.StatusOK, products)
}

// UpdateProduct edita os campos enviados; pedidos antigos não mudam
// porque os itens são cópias.
func UpdateProduct(c *gin.Context) {
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

	var body struct {
		Name             *string               `json:"name"`
		Price            *float64              `json:"price"`
		PriceUpholsterer *float64              `json:"price_upholsterer"`
		Stock            *float64              `json:"stock"`
		Image            *string               `json:"image"`
		Colors           []models.ProductColor `json:"colors"`
		Width            *float64              `json:"width"`
		Weight           *float64              `json:"weight"`
		Composition      *string               `json:"composition"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if body.Name != nil {
		p.Name = *body.Name
	}
	if body.Price != nil {
		if *body.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Preço deve ser positivo"})
			return
		}
		p.Price = *body.Price
	}
	if body.PriceUpholsterer != nil {
		p.PriceUpholsterer = body.PriceUpholsterer
	}
	if body.Stock != nil {
		if *body.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Estoque deve ser positivo"})
			return
		}
		p.Stock = *body.Stock
	}
	if body.Image != nil {
		p.Image = *body.Image
	}
	if len(body.Colors) > 0 {
		p.Colors = body.Colors
	}
	if body.Width != nil {
		p.Width = *body.Width
	}
	if body.Weight != nil {
		p.Weight = *body.Weight
	}
	if body.Composition != nil {
		p.Composition = *body.Composition
	}

	err = database.Scylla.Query(
		`UPDATE products SET name = ?, price = ?, price_upholsterer = ?, stock = ?, image = ?, colors = ?, width = ?, weight = ?, composition = ? WHERE product_id = ?`,
		p.Name, p.Price, p.PriceUpholsterer, p.Stock, p.Image, p.ColorsJSON(),
		p.Width, p.Weight, p.Composition, p.ID,
	).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	go services.IndexProduct(p)
	cache.InvalidateCatalog(c.Request.Context())

	c.JSON(http.StatusOK, p)
}

func DeleteProduct(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de produto inválido"})
		return
	}

	if err := database.Scylla.Query(`DELETE FROM products WHERE product_id = ?`, id).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	go services.RemoveProduct(id.String())
	cache.InvalidateCatalog(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"message": "Produto removido"})
}

// 🔍 Busca via Elasticsearch, com fallback para varredura no Scylla
// quando o cluster de busca está fora do ar
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parâmetro 'q' ausente"})
		return
	}

	results, err := services.SearchProducts(query)
	if err == nil && len(results) > 0 {
		if !canSeeTradePrice(c) {
			results = stripTradePrices(results)
		}
		c.JSON(http.StatusOK, results)
		return
	}

	// Fallback: substring sem acento/caixa sobre o catálogo inteiro.
	// O catálogo é pequeno o bastante para isso não doer.
	iter := database.Scylla.Query(`SELECT ` + productColumns + ` FROM products`).Iter()
	all := scanProducts(iter)
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro na busca"})
		return
	}

	needle := strings.ToLower(query)
	matches := []models.Product{}
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) ||
			strings.Contains(strings.ToLower(p.Composition), needle) {
			matches = append(matches, p)
		}
	}

	if !canSeeTradePrice(c) {
		matches = stripTradePrices(matches)
	}
	c.JSON(http.StatusOK, matches)
}
