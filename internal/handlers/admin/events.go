package admin

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Kaiser-luz/rio-verde-loja/internal/cache"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// A rota já passa pelo cookie de sessão admin
		return true
	},
}

// OrderEvents é o feed em tempo real do painel: novos pedidos e
// mudanças de status chegam pelo pub/sub do Redis
func OrderEvents(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erro no upgrade do WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()
	pubsub := cache.SubscribeOrderEvents(ctx)
	defer pubsub.Close()

	ch := pubsub.Channel()

	conn.WriteJSON(gin.H{
		"type":    "connected",
		"message": "Feed de pedidos ativo",
	})

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var event cache.OrderEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}

			if err := conn.WriteJSON(event); err != nil {
				log.Printf("❌ Erro ao enviar evento pelo WebSocket: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			// ping para manter a conexão viva atrás de proxies
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
