package interfaces

import (
	"context"

	"whiteboardLabeler/internal/models"
)

type EventPublisher interface {
	Publish(ctx context.Context, event *models.AnnotationEvent) error
}
