package ports

import (
	"context"

	"github.com/layer-3/dropregards/core"
)

// EventPublisher publishes domain events to other services
type EventPublisher interface {
	PublishRegardSent(ctx context.Context, regard *core.Regard) error
}
