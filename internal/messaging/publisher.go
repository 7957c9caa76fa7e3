package messaging

import (
	"context"

	"github.com/partvault/assettag/internal/domain"
)

// Publisher defines the interface for publishing tag lifecycle events to the
// message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a tag lifecycle event
	PublishEvent(ctx context.Context, event *domain.TagEvent) error
	// Close closes the connection
	Close()
}
