package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"whiteboardLabeler/internal/enums"
	"whiteboardLabeler/internal/interfaces"
	"whiteboardLabeler/internal/models"
)

type WhiteboardService struct {
	whiteboardRepo interfaces.LabelingRepository
	publisher      interfaces.EventPublisher
	log            *zap.Logger
	now            func() time.Time
}

func NewWhiteboardService(
	whiteboardRepo interfaces.LabelingRepository,
	publisher interfaces.EventPublisher,
	log *zap.Logger,
) *WhiteboardService {
	if publisher == nil {
		publisher = NopEventPublisher{}
	}
	return &WhiteboardService{
		whiteboardRepo: whiteboardRepo,
		publisher:      publisher,
		log:            log,
		now:            now,
	}
}

// now is millisecond precision UTC, which every backing store round-trips.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func (ws *WhiteboardService) ListWhiteboards(ctx context.Context) ([]models.WhiteboardSummary, error) {
	return ws.whiteboardRepo.ListWhiteboards(ctx)
}

func (ws *WhiteboardService) GetWhiteboard(ctx context.Context, id string) (*models.Whiteboard, error) {
	return ws.whiteboardRepo.FindWhiteboard(ctx, id)
}

// AddChunk creates a chunk from a validated request. contractor is the
// already resolved creator name.
func (ws *WhiteboardService) AddChunk(ctx context.Context, whiteboardID string, request *models.CreateChunkRequest, contractor string) (*models.Chunk, error) {
	chunk := &models.Chunk{
		ID:            uuid.NewString(),
		WhiteboardID:  whiteboardID,
		Coordinates:   *request.Coordinates,
		Transcription: request.Transcription,
		Confidence:    request.Confidence,
		Contractor:    contractor,
		CreatedAt:     ws.now(),
	}

	created, err := ws.whiteboardRepo.InsertChunk(ctx, chunk)
	if err != nil {
		return nil, err
	}

	ws.publish(ctx, &models.AnnotationEvent{
		Event:        enums.EVENT_CHUNK_CREATED,
		WhiteboardID: whiteboardID,
		ChunkID:      created.ID,
		Contractor:   contractor,
		At:           created.CreatedAt,
	})
	return created, nil
}

func (ws *WhiteboardService) DeleteChunk(ctx context.Context, whiteboardID, chunkID, contractor string) error {
	if err := ws.whiteboardRepo.DeleteChunk(ctx, whiteboardID, chunkID); err != nil {
		return err
	}
	ws.publish(ctx, &models.AnnotationEvent{
		Event:        enums.EVENT_CHUNK_DELETED,
		WhiteboardID: whiteboardID,
		ChunkID:      chunkID,
		Contractor:   contractor,
		At:           ws.now(),
	})
	return nil
}

func (ws *WhiteboardService) SetComplete(ctx context.Context, whiteboardID string, complete bool, contractor string) error {
	if err := ws.whiteboardRepo.UpdateWhiteboardCompletion(ctx, whiteboardID, complete, contractor); err != nil {
		return err
	}
	ws.publish(ctx, &models.AnnotationEvent{
		Event:        enums.EVENT_WHITEBOARD_COMPLETE,
		WhiteboardID: whiteboardID,
		Contractor:   contractor,
		Complete:     &complete,
		At:           ws.now(),
	})
	return nil
}

// publish never fails the request; a lost event is only logged.
func (ws *WhiteboardService) publish(ctx context.Context, event *models.AnnotationEvent) {
	if err := ws.publisher.Publish(ctx, event); err != nil {
		ws.log.Warn("publishing annotation event failed",
			zap.String("event", event.Event),
			zap.String("whiteboard_id", event.WhiteboardID),
			zap.Error(err))
	}
}
