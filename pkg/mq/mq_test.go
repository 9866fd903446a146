package mq

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordedPublish struct {
	exchange, key string
	msg           amqp.Publishing
}

type fakeChannel struct {
	published []recordedPublish
	err       error
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, recordedPublish{exchange, key, msg})
	return nil
}

func (f *fakeChannel) Close() error { return nil }

type bookEvent struct {
	BookID uint   `json:"book_id"`
	Title  string `json:"title"`
}

func TestPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{ch: ch, exchange: "bookcatalog.events", log: zap.NewNop()}

	require.NoError(t, p.Publish(context.Background(), "book.published", bookEvent{BookID: 1, Title: "Dragonrider"}))
	require.Len(t, ch.published, 1)

	got := ch.published[0]
	assert.Equal(t, "bookcatalog.events", got.exchange)
	assert.Equal(t, "book.published", got.key)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)

	var decoded bookEvent
	require.NoError(t, json.Unmarshal(got.msg.Body, &decoded))
	assert.Equal(t, "Dragonrider", decoded.Title)
}

func TestPublisher_PublishErrors(t *testing.T) {
	p := &Publisher{ch: &fakeChannel{err: errors.New("channel closed")}, exchange: "x", log: zap.NewNop()}
	assert.Error(t, p.Publish(context.Background(), "book.deleted", bookEvent{BookID: 1}))

	// 不可序列化的消息
	p = &Publisher{ch: &fakeChannel{}, exchange: "x", log: zap.NewNop()}
	assert.Error(t, p.Publish(context.Background(), "book.deleted", make(chan int)))
}

// TestRoundTrip 需要真实RabbitMQ，设置BOOKCATALOG_TEST_AMQP_URL后运行
func TestRoundTrip(t *testing.T) {
	url := os.Getenv("BOOKCATALOG_TEST_AMQP_URL")
	if url == "" {
		t.Skip("未设置BOOKCATALOG_TEST_AMQP_URL")
	}
	log := zap.NewNop()

	consumer, err := NewConsumer(url, "bookcatalog.test", "", []string{"book.*"}, log)
	require.NoError(t, err)
	defer consumer.Close()

	publisher, err := NewPublisher(url, "bookcatalog.test", log)
	require.NoError(t, err)
	defer publisher.Close()

	require.NoError(t, publisher.Publish(context.Background(), "book.published", bookEvent{BookID: 9}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	received := make(chan Delivery, 1)
	go func() {
		_ = consumer.Consume(ctx, func(_ context.Context, d Delivery) error {
			received <- d
			cancel()
			return nil
		})
	}()

	select {
	case d := <-received:
		assert.Equal(t, "book.published", d.RoutingKey)
	case <-time.After(5 * time.Second):
		t.Fatal("未收到消息")
	}
}
