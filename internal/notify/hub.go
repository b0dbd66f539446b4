package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// Hub bridges Redis Pub/Sub to websocket clients. Each connection gets its
// own subscription covering the user's channel plus the broadcast channel.
type Hub struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewHub(client *redis.Client, log zerolog.Logger) *Hub {
	return &Hub{client: client, log: log}
}

// Serve pumps notification payloads to the connection until the client
// disconnects or ctx is cancelled. It blocks; run per connection.
func (h *Hub) Serve(ctx context.Context, conn *websocket.Conn, userID uuid.UUID) {
	pubsub := h.client.Subscribe(ctx, userChannel(userID), broadcastChannel)
	defer pubsub.Close()
	defer conn.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Drain reads so control frames are processed and closed peers detected.
	go func() {
		defer cancel()
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	messages := pubsub.Channel()
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				h.log.Debug().Err(err).Str("user_id", userID.String()).Msg("websocket write failed")
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
