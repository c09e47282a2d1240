package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnv_Defaults(t *testing.T) {
	cfg := LoadEnv()

	assert.Equal(t, ":3000", cfg.Server.HTTPPort)
	assert.Equal(t, ":8082", cfg.Server.GRPCPort)
	assert.Equal(t, 5, cfg.Inventory.DefaultLowStockThreshold)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", ":9000")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("INVENTORY_DEFAULT_LOW_STOCK_THRESHOLD", "not-a-number")

	cfg := LoadEnv()

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, ":9000", cfg.Server.HTTPPort)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.InDelta(t, 2.5, cfg.RateLimit.RequestsPerSecond, 1e-9)
	assert.Equal(t, 5, cfg.Inventory.DefaultLowStockThreshold)
}
