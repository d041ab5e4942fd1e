package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/layer-3/dropregards/core"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	topic    string
	messages []*message.Message
	err      error
}

func (p *recordingPublisher) Publish(topic string, messages ...*message.Message) error {
	p.topic = topic
	p.messages = append(p.messages, messages...)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func TestPublishRegardSent(t *testing.T) {
	rec := &recordingPublisher{}
	pub := NewWatermillPublisher(rec)

	regard := &core.Regard{
		ID:                   "0b7c1a44-3b1e-4c55-9a4c-3f1f2a1f0c11",
		Sender:               core.Party{WalletAddress: "sender"},
		Recipient:            core.Party{WalletAddress: "recipient"},
		Amount:               decimal.RequireFromString("0.5"),
		TransactionSignature: "sig",
		CreatedAt:            time.Unix(1700000000, 0).UTC(),
	}

	require.NoError(t, pub.PublishRegardSent(context.Background(), regard))

	assert.Equal(t, RegardSentTopic, rec.topic)
	require.Len(t, rec.messages, 1)
	assert.Equal(t, regard.ID, rec.messages[0].UUID)

	var event RegardSentEvent
	require.NoError(t, json.Unmarshal(rec.messages[0].Payload, &event))
	assert.Equal(t, "sender", event.Sender)
	assert.Equal(t, "recipient", event.Recipient)
	assert.True(t, event.Amount.Equal(regard.Amount))
	assert.Equal(t, "sig", event.TransactionSignature)
}

func TestPublishRegardSent_Error(t *testing.T) {
	pub := NewWatermillPublisher(&recordingPublisher{err: errors.New("redis down")})

	err := pub.PublishRegardSent(context.Background(), &core.Regard{ID: "id"})
	assert.ErrorContains(t, err, "failed to publish event")
}
