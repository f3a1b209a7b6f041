package main

import (
	"context"
	"testing"

	"github.com/MozaAdirafi/tabletap/order-svc/internal/cart"
	"github.com/MozaAdirafi/tabletap/order-svc/internal/livesync"
	"github.com/MozaAdirafi/tabletap/order-svc/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartKeyPolicy(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		expected cart.KeyPolicy
		wantErr  bool
	}{
		{name: "default", env: "", expected: cart.KeyByItem},
		{name: "variant", env: "variant", expected: cart.KeyByVariant},
		{name: "unknown", env: "by-color", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Setenv("CART_KEY_POLICY", testCase.env)
			policy, err := cartKeyPolicy()
			if testCase.wantErr {
				assert.ErrorIs(t, err, cart.ErrInvalidKeyPolicy)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, policy)
		})
	}
}

func TestNewOrderRepository_MemoryWithoutDatabase(t *testing.T) {
	t.Setenv("DB_HOST", "")
	repository, closeRepository := newOrderRepository(context.Background())
	defer closeRepository()

	assert.IsType(t, &storage.MemoryRepository{}, repository)
}

func TestNewCartStorage_MemoryWithoutRedis(t *testing.T) {
	t.Setenv("REDIS_HOST", "")
	assert.IsType(t, &cart.MemoryStorage{}, newCartStorage())
}

func TestNewEventStream_InProcessWithoutKafka(t *testing.T) {
	t.Setenv("KAFKA_BROKER", "")
	broker := livesync.NewBroker(storage.NewMemoryRepository())
	defer broker.Close()

	publisher, consumer, closeStream := newEventStream(broker)
	defer closeStream()

	assert.IsType(t, &livesync.LocalPublisher{}, publisher)
	assert.Nil(t, consumer)
}

func TestNewEventStream_KafkaWhenConfigured(t *testing.T) {
	t.Setenv("KAFKA_BROKER", "kafka:9092")
	broker := livesync.NewBroker(storage.NewMemoryRepository())
	defer broker.Close()

	publisher, consumer, closeStream := newEventStream(broker)
	defer closeStream()

	assert.IsType(t, &storage.KafkaPublisher{}, publisher)
	require.NotNil(t, consumer)
	defer consumer.Reader.Close()
	assert.Same(t, broker, consumer.Broker)
}

func TestNewOrderLimiter(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1")
	limiter, err := newOrderLimiter()
	require.NoError(t, err)
	assert.NotNil(t, limiter)

	t.Setenv("TRUSTED_PROXIES", "gateway")
	_, err = newOrderLimiter()
	assert.Error(t, err)
}
