package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Kaiser-luz/rio-verde-loja/internal/database"
	"github.com/Kaiser-luz/rio-verde-loja/internal/models"
)

const (
	ProductListTTL  = 10 * time.Minute
	CategoryListTTL = 30 * time.Minute

	productListKey  = "products:all"
	categoryListKey = "categories:all"
)

// GetProductList devolve a lista de produtos do cache, se houver
func GetProductList(ctx context.Context) ([]models.Product, bool) {
	data, err := database.Redis.Get(ctx, productListKey).Result()
	if err != nil || data == "" {
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(data), &products); err != nil {
		return nil, false
	}
	return products, true
}

// SetProductList guarda a lista completa de produtos
func SetProductList(ctx context.Context, products []models.Product) {
	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	database.Redis.Set(ctx, productListKey, data, ProductListTTL)
}

// GetCategoryList devolve a lista de categorias do cache, se houver
func GetCategoryList(ctx context.Context) ([]models.Category, bool) {
	data, err := database.Redis.Get(ctx, categoryListKey).Result()
	if err != nil || data == "" {
		return nil, false
	}

	var categories []models.Category
	if err := json.Unmarshal([]byte(data), &categories); err != nil {
		return nil, false
	}
	return categories, true
}

// SetCategoryList guarda a lista de categorias
func SetCategoryList(ctx context.Context, categories []models.Category) {
	data, err := json.Marshal(categories)
	if err != nil {
		return
	}
	database.Redis.Set(ctx, categoryListKey, data, CategoryListTTL)
}

// InvalidateCatalog derruba os caches após escrita do admin
func InvalidateCatalog(ctx context.Context) {
	database.Redis.Del(ctx, productListKey, categoryListKey)
}
