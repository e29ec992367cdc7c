package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Config — настройки подключения к MongoDB. Переменные: CALCULATOR_MONGO_*.
type Config struct {
	URI        string `envconfig:"URI" default:"mongodb://localhost:27017"`
	Database   string `envconfig:"DATABASE" default:"kawaiicalc"`
	Collection string `envconfig:"COLLECTION" default:"operations"`
}

// Client — обёртка над mongo.Client.
type Client struct {
	*mongo.Client
	cfg Config
}

// New подключается к MongoDB по конфигу и создаёт индекс по времени вычисления.
func New(ctx context.Context, cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	c := &Client{Client: client, cfg: *cfg}
	if _, err := c.Coll().Indexes().CreateOne(pingCtx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	}); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo index: %w", err)
	}
	return c, nil
}

// Close отключается от MongoDB.
func (c *Client) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.Disconnect(ctx)
}

// Coll возвращает коллекцию вычислений.
func (c *Client) Coll() *mongo.Collection {
	return c.Database(c.cfg.Database).Collection(c.cfg.Collection)
}
