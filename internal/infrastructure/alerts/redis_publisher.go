package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventario-tiendas/internal/application/inventory"
	"github.com/jhoicas/inventario-tiendas/pkg/config"
)

var _ inventory.AlertPublisher = (*RedisPublisher)(nil)

// DefaultChannel canal pub/sub si no se configura otro.
const DefaultChannel = "inventory:low-stock"

// NewRedisClient crea el cliente y verifica la conexión con un ping de 5s.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("alerts: redis ping: %w", err)
	}
	return client, nil
}

// RedisPublisher publica la alerta serializada en JSON en un canal Redis.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher construye el publisher. channel vacío -> DefaultChannel.
func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{client: client, channel: channel}
}

// Channel nombre del canal usado.
func (p *RedisPublisher) Channel() string {
	return p.channel
}

// PublishLowStock publica la alerta. Sin suscriptores el mensaje se pierde (pub/sub no persiste).
func (p *RedisPublisher) PublishLowStock(ctx context.Context, alert inventory.LowStockAlert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("alerts: marshal: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("alerts: publish %s: %w", p.channel, err)
	}
	return nil
}
