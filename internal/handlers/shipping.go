package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kaiser-luz/rio-verde-loja/internal/models"
	"github.com/Kaiser-luz/rio-verde-loja/internal/services"
)

// 🚚 Cotação de frete por CEP para o carrinho atual
func EstimateShipping(c *gin.Context) {
	var body struct {
		CEP   string            `json:"cep" binding:"required"`
		Items []models.CartItem `json:"items"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	options, err := services.NewEstimator().Estimate(body.CEP, body.Items)
	if err == services.ErrInvalidCEP {
		c.JSON(http.StatusBadRequest, gin.H{"error": "CEP deve ter 8 dígitos"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"options": options})
}
