package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/interfaces"
)

type published struct {
	exchange string
	msg      amqp.Publishing
}

type fakeChannel struct {
	declared   []string
	published  []published
	closed     bool
	deliveries chan amqp.Delivery
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	f.declared = append(f.declared, name+":"+kind)
	return nil
}

func (f *fakeChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (Queue, error) {
	return Queue{Name: "amq.gen-test"}, nil
}

func (f *fakeChannel) QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error {
	return nil
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.published = append(f.published, published{exchange: exchange, msg: msg})
	return nil
}

func (f *fakeChannel) Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error) {
	if f.deliveries == nil {
		return nil, errors.New("not supported")
	}
	return f.deliveries, nil
}

func (f *fakeChannel) Qos(prefetchCount, prefetchSize int, global bool) error { return nil }

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func (f *fakeChannel) NotifyClose() <-chan *amqp.Error { return make(chan *amqp.Error) }

type fakeConnection struct {
	ch  *fakeChannel
	err error
}

func (f *fakeConnection) Channel() (Channel, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ch, nil
}

func (f *fakeConnection) Close() error  { return nil }
func (f *fakeConnection) IsClosed() bool { return false }

func TestPublishStoreEvent(t *testing.T) {
	ch := &fakeChannel{}
	pub := NewPublisher(&fakeConnection{ch: ch})

	event := interfaces.StoreEvent{
		Origin:      "instance-a",
		Action:      "order_created",
		Collections: []interfaces.Collection{interfaces.CollectionOrders, interfaces.CollectionIngredients},
		EntityID:    "42",
		Timestamp:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, pub.PublishStoreEvent(context.Background(), event))

	assert.Equal(t, []string{"pos_events:fanout"}, ch.declared)
	require.Len(t, ch.published, 1)
	assert.Equal(t, ExchangeStoreEvents, ch.published[0].exchange)
	assert.Equal(t, "application/json", ch.published[0].msg.ContentType)
	assert.True(t, ch.closed)

	var got interfaces.StoreEvent
	require.NoError(t, json.Unmarshal(ch.published[0].msg.Body, &got))
	assert.Equal(t, event, got)
}

func TestPublishStoreEventWithoutChannel(t *testing.T) {
	pub := NewPublisher(&fakeConnection{err: errors.New("connection is closed")})
	err := pub.PublishStoreEvent(context.Background(), interfaces.StoreEvent{})
	assert.Error(t, err)
}
