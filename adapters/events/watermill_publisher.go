package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/layer-3/dropregards/core"
	"github.com/layer-3/dropregards/ports"
	"github.com/shopspring/decimal"
)

// RegardSentTopic is the topic regard events are published on
const RegardSentTopic = "dropregards.regards.sent"

// RegardSentEvent represents a regard that was verified and stored
type RegardSentEvent struct {
	ID                   string          `json:"id"`
	Sender               string          `json:"sender"`
	Recipient            string          `json:"recipient"`
	Amount               decimal.Decimal `json:"amount"`
	TransactionSignature string          `json:"transactionSignature"`
	CreatedAt            time.Time       `json:"createdAt"`
}

// WatermillPublisher implements the EventPublisher interface using Watermill
type WatermillPublisher struct {
	publisher message.Publisher
	topic     string
}

// NewWatermillPublisher creates a new Watermill publisher
func NewWatermillPublisher(publisher message.Publisher) ports.EventPublisher {
	return &WatermillPublisher{
		publisher: publisher,
		topic:     RegardSentTopic,
	}
}

// PublishRegardSent publishes a regard sent event
func (p *WatermillPublisher) PublishRegardSent(ctx context.Context, regard *core.Regard) error {
	event := RegardSentEvent{
		ID:                   regard.ID,
		Sender:               regard.Sender.WalletAddress,
		Recipient:            regard.Recipient.WalletAddress,
		Amount:               regard.Amount,
		TransactionSignature: regard.TransactionSignature,
		CreatedAt:            regard.CreatedAt,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(regard.ID, payload)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
