package payment

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"github.com/Kaiser-luz/rio-verde-loja/internal/cache"
	"github.com/Kaiser-luz/rio-verde-loja/internal/database"
	"github.com/Kaiser-luz/rio-verde-loja/internal/handlers"
	"github.com/Kaiser-luz/rio-verde-loja/internal/handlers/user"
	"github.com/Kaiser-luz/rio-verde-loja/internal/models"
	"github.com/Kaiser-luz/rio-verde-loja/internal/services"
	"github.com/Kaiser-luz/rio-verde-loja/internal/utils"
)

// webhookPayload é o corpo da notificação. Só o id e a referência
// importam: o status do corpo nunca é confiado.
type webhookPayload struct {
	ID          string `json:"id"`
	ReferenceID string `json:"reference_id"`
}

// 🔔 Webhook do PagSeguro. A notificação é só um aviso: o status
// autoritativo vem da re-consulta à API.
func PagSeguroWebhook(c *gin.Context) {
	var payload webhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusOK, gin.H{"message": "Notificação ignorada"})
		return
	}

	// Notificações de teste do painel chegam sem referência
	if payload.ReferenceID == "" {
		log.Println("🔔 Notificação sem reference_id, ignorando")
		c.JSON(http.StatusOK, gin.H{"message": "Notificação ignorada"})
		return
	}

	orderID, err := gocql.ParseUUID(payload.ReferenceID)
	if err != nil {
		log.Printf("🔔 reference_id não é um pedido nosso: %s", payload.ReferenceID)
		c.JSON(http.StatusOK, gin.H{"message": "Notificação ignorada"})
		return
	}

	client, err := services.NewPagSeguroClient()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Pagamento indisponível"})
		return
	}

	// Re-consulta autoritativa. Falha aqui é 500 de propósito: o
	// PagSeguro reenvia a notificação depois.
	psOrder, err := client.GetOrder(payload.ID)
	if err != nil {
		log.Printf("❌ Erro na re-consulta do pedido %s: %v", payload.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao consultar pagamento"})
		return
	}

	newStatus := services.MapPagSeguroStatus(psOrder.ChargeStatus())

	var currentStatus string
	err = database.Scylla.Query(
		`SELECT status FROM orders WHERE order_id = ?`, orderID,
	).Scan(&currentStatus)
	if err == gocql.ErrNotFound {
		log.Printf("🔔 Pedido %s não existe, ignorando", orderID)
		c.JSON(http.StatusOK, gin.H{"message": "Notificação ignorada"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Idempotência: notificação repetida com o mesmo status não dispara
	// email nem evento de novo
	if !services.ShouldApplyStatus(currentStatus, newStatus) {
		c.JSON(http.StatusOK, gin.H{"status": newStatus})
		return
	}

	pixCode := psOrder.PixCode()
	err = database.Scylla.Query(
		`UPDATE orders SET status = ?, pix_code = ? WHERE order_id = ?`,
		newStatus, pixCode, orderID,
	).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("✅ Pedido %s: %s -> %s", orderID, currentStatus, newStatus)

	cache.PublishOrderEvent(c.Request.Context(), cache.OrderEvent{
		Type:    "status",
		OrderID: orderID.String(),
		Status:  newStatus,
	})

	if newStatus == models.StatusPago {
		go sendPaymentEmail(orderID)
	}

	c.JSON(http.StatusOK, gin.H{"status": newStatus})
}

// sendPaymentEmail manda a confirmação para o dono do pedido, se houver
// perfil com email. O pedido é carregado inteiro: o template renderiza
// itens, método de entrega e frete.
func sendPaymentEmail(orderID gocql.UUID) {
	o, err := handlers.LoadOrder(orderID)
	if err != nil || o.ProfileID == nil {
		return
	}

	p, err := user.FetchProfile(*o.ProfileID)
	if err != nil || p.Email == "" {
		return
	}

	html := utils.GenerateOrderConfirmationHTML(o)
	if err := utils.SendConfirmationEmail(p.Email, "Pagamento confirmado - Rio Verde", html); err != nil {
		log.Printf("⚠️ Erro ao enviar email de confirmação: %v", err)
		return
	}
	log.Printf("📤 Email de confirmação enviado para %s", p.Email)
}
