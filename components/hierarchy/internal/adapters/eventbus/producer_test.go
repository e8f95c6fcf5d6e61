package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-sh/control-plane/components/hierarchy/internal/services/command"
)

type fakeChannel struct {
	published []amqp.Publishing
	exchanges []string
	keys      []string
	err       error
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}

	f.exchanges = append(f.exchanges, exchange)
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)

	return nil
}

func TestProducerPublishRoutesByType(t *testing.T) {
	fc := &fakeChannel{}
	p := &Producer{channel: fc, exchange: "hierarchy.events"}

	err := p.Publish(context.Background(), command.Event{Event: "Create", Type: "Customer", Object: map[string]any{"cid": float64(1)}})
	require.NoError(t, err)

	require.Len(t, fc.published, 1)
	assert.Equal(t, "hierarchy.events", fc.exchanges[0])
	assert.Equal(t, "Customer", fc.keys[0])

	var decoded command.Event
	require.NoError(t, json.Unmarshal(fc.published[0].Body, &decoded))
	assert.Equal(t, "Create", decoded.Event)
}

func TestProducerPublishPropagatesChannelError(t *testing.T) {
	fc := &fakeChannel{err: errors.New("broker unavailable")}
	p := &Producer{channel: fc, exchange: "hierarchy.events"}

	err := p.Publish(context.Background(), command.Event{Event: "Delete", Type: "Institution"})
	assert.Error(t, err)
}
