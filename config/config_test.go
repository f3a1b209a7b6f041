package config

import (
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("TABLETAP_SET", "value")
	t.Setenv("TABLETAP_EMPTY", "")

	assert.Equal(t, "value", GetEnv("TABLETAP_SET", "fallback"))
	assert.Equal(t, "fallback", GetEnv("TABLETAP_EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("TABLETAP_MISSING", "fallback"))
}

func TestGetIntAndDuration(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		intValue int
		duration time.Duration
	}{
		{name: "unset", raw: "", intValue: 5, duration: time.Second},
		{name: "invalid", raw: "soon", intValue: 5, duration: time.Second},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Setenv("TABLETAP_NUM", testCase.raw)
			assert.Equal(t, testCase.intValue, GetInt("TABLETAP_NUM", 5))
			assert.Equal(t, testCase.duration, GetDuration("TABLETAP_NUM", time.Second))
		})
	}

	t.Setenv("TABLETAP_NUM", "12")
	assert.Equal(t, 12, GetInt("TABLETAP_NUM", 5))
	t.Setenv("TABLETAP_WAIT", "250ms")
	assert.Equal(t, 250*time.Millisecond, GetDuration("TABLETAP_WAIT", time.Second))
}

func TestGetList(t *testing.T) {
	t.Setenv("TABLETAP_LIST", "")
	assert.Empty(t, GetList("TABLETAP_LIST"))

	t.Setenv("TABLETAP_LIST", " 10.0.0.0/8, ,127.0.0.1 ")
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, GetList("TABLETAP_LIST"))
}

func TestPostgresDSN(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "tap")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "orders")
	t.Setenv("DB_SSLMODE", "")

	assert.Equal(t, "host=db port=6543 user=tap password=secret dbname=orders sslmode=disable", PostgresDSN())
}

func TestNewKafkaWriter(t *testing.T) {
	t.Setenv("KAFKA_BROKER", "kafka:9092")

	writer := NewKafkaWriter(OrdersTopic)
	assert.Equal(t, "orders", writer.Topic)
	assert.Equal(t, "kafka:9092", writer.Addr.String())
	assert.IsType(t, &kafka.Hash{}, writer.Balancer)
	assert.True(t, KafkaEnabled())
}
