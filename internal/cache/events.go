package cache

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/Kaiser-luz/rio-verde-loja/internal/database"
)

// Canal pub/sub do feed de pedidos do painel admin
const OrderEventsChannel = "orders:events"

// OrderEvent é a mensagem enviada ao websocket do back-office
type OrderEvent struct {
	Type    string  `json:"type"` // "created" ou "status"
	OrderID string  `json:"order_id"`
	Status  string  `json:"status"`
	Total   float64 `json:"total,omitempty"`
}

// PublishOrderEvent avisa o painel admin em tempo real. Falha de publish
// não derruba o fluxo do pedido.
func PublishOrderEvent(ctx context.Context, event OrderEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	database.Redis.Publish(ctx, OrderEventsChannel, data)
}

// SubscribeOrderEvents abre a assinatura usada pelo websocket do admin
func SubscribeOrderEvents(ctx context.Context) *redis.PubSub {
	return database.Redis.Subscribe(ctx, OrderEventsChannel)
}
