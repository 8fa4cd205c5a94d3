// Package repotest holds behaviour checks shared by every LabelingRepository
// implementation.
package repotest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whiteboardLabeler/internal/errs"
	"whiteboardLabeler/internal/interfaces"
	"whiteboardLabeler/internal/models"
)

// Factory returns a fresh, empty repository. It should register its own cleanup.
type Factory func(t *testing.T) interfaces.LabelingRepository

func seed(t *testing.T, repo interfaces.LabelingRepository) {
	t.Helper()
	n, err := repo.ImportWhiteboards(context.Background(), []models.Whiteboard{
		{ID: "W1", ImageURL: "https://img/w1.png"},
		{ID: "W2", ImageURL: "https://img/w2.png"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func newChunk(id, whiteboardID, contractor string, at time.Time) *models.Chunk {
	return &models.Chunk{
		ID:            id,
		WhiteboardID:  whiteboardID,
		Coordinates:   models.Coordinates{X: 1, Y: 2, Width: 3, Height: 4},
		Transcription: "7",
		Confidence:    models.ConfidenceHigh,
		Contractor:    contractor,
		CreatedAt:     at,
	}
}

// Run executes the shared checks against repositories built by factory.
func Run(t *testing.T, factory Factory) {
	ctx := context.Background()
	at := time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)

	t.Run("EmptyStore", func(t *testing.T) {
		repo := factory(t)
		list, err := repo.ListWhiteboards(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)

		rows, err := repo.ListExportRows(ctx)
		require.NoError(t, err)
		assert.Empty(t, rows)

		_, err = repo.FindWhiteboard(ctx, "W1")
		assert.ErrorIs(t, err, errs.ErrWhiteboardNotFound)
	})

	t.Run("ImportAndList", func(t *testing.T) {
		repo := factory(t)
		seed(t, repo)

		n, err := repo.ImportWhiteboards(ctx, []models.Whiteboard{{ID: "W1", ImageURL: "dup"}, {ID: "W3", ImageURL: "u3"}})
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		list, err := repo.ListWhiteboards(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []string{"W1", "W2", "W3"}, []string{list[0].ID, list[1].ID, list[2].ID})
		assert.Equal(t, "https://img/w1.png", list[0].ImageURL)
		assert.False(t, list[0].Complete)
	})

	t.Run("InsertChunkAppendsAndCounts", func(t *testing.T) {
		repo := factory(t)
		seed(t, repo)
		contractor, created, err := repo.CreateContractorIfAbsent(ctx, "alice", at)
		require.NoError(t, err)
		require.True(t, created)
		assert.Equal(t, 0, contractor.Processed)

		_, err = repo.InsertChunk(ctx, newChunk("c1", "W1", "alice", at))
		require.NoError(t, err)
		later := at.Add(time.Minute)
		created2, err := repo.InsertChunk(ctx, newChunk("c2", "W1", "alice", later))
		require.NoError(t, err)
		assert.Equal(t, "c2", created2.ID)

		whiteboard, err := repo.FindWhiteboard(ctx, "W1")
		require.NoError(t, err)
		require.Len(t, whiteboard.Chunks, 2)
		assert.Equal(t, "c1", whiteboard.Chunks[0].ID)
		assert.Equal(t, "c2", whiteboard.Chunks[1].ID)
		assert.Equal(t, "W1", whiteboard.Chunks[1].WhiteboardID)
		assert.Equal(t, models.Coordinates{X: 1, Y: 2, Width: 3, Height: 4}, whiteboard.Chunks[1].Coordinates)
		assert.Equal(t, "alice", whiteboard.Contractor)

		stored, err := repo.FindContractor(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, 2, stored.Processed)
		assert.True(t, stored.LastProcessed.Equal(later))

		list, err := repo.ListWhiteboards(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, list[0].ChunkCount)
	})

	t.Run("ConcurrentInsertsAreSerialized", func(t *testing.T) {
		repo := factory(t)
		seed(t, repo)
		_, _, err := repo.CreateContractorIfAbsent(ctx, "alice", at)
		require.NoError(t, err)

		const writers = 25
		var wg sync.WaitGroup
		errCh := make(chan error, writers)
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := repo.InsertChunk(ctx, newChunk(fmt.Sprintf("c%02d", i), "W1", "alice", at))
				errCh <- err
			}(i)
		}
		wg.Wait()
		close(errCh)
		for err := range errCh {
			require.NoError(t, err)
		}

		whiteboard, err := repo.FindWhiteboard(ctx, "W1")
		require.NoError(t, err)
		assert.Len(t, whiteboard.Chunks, writers)
		seen := make(map[string]bool, writers)
		for _, chunk := range whiteboard.Chunks {
			seen[chunk.ID] = true
		}
		assert.Len(t, seen, writers)

		contractor, err := repo.FindContractor(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, contractor)
		assert.Equal(t, writers, contractor.Processed)
	})

	t.Run("InsertChunkUnknownContractor", func(t *testing.T) {
		repo := factory(t)
		seed(t, repo)
		_, err := repo.InsertChunk(ctx, newChunk("c1", "W2", "nobody", at))
		require.NoError(t, err)

		missing, err := repo.FindContractor(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("InsertChunkMissingWhiteboard", func(t *testing.T) {
		repo := factory(t)
		seed(t, repo)
		_, err := repo.InsertChunk(ctx, newChunk("c1", "nope", "alice", at))
		assert.ErrorIs(t, err, errs.ErrWhiteboardNotFound)
	})

	t.Run("DeleteChunk", func(t *testing.T) {
		repo := factory(t)
		seed(t, repo)
		_, err := repo.InsertChunk(ctx, newChunk("c1", "W1", "alice", at))
		require.NoError(t, err)
		_, err = repo.InsertChunk(ctx, newChunk("c2", "W1", "alice", at))
		require.NoError(t, err)

		require.NoError(t, repo.DeleteChunk(ctx, "W1", "c1"))
		whiteboard, err := repo.FindWhiteboard(ctx, "W1")
		require.NoError(t, err)
		require.Len(t, whiteboard.Chunks, 1)
		assert.Equal(t, "c2", whiteboard.Chunks[0].ID)

		assert.ErrorIs(t, repo.DeleteChunk(ctx, "W1", "c1"), errs.ErrWhiteboardOrChunkNotFound)
		assert.ErrorIs(t, repo.DeleteChunk(ctx, "W2", "c2"), errs.ErrWhiteboardOrChunkNotFound)
		assert.ErrorIs(t, repo.DeleteChunk(ctx, "nope", "c2"), errs.ErrWhiteboardOrChunkNotFound)
	})

	t.Run("CompletionLastWriteWins", func(t *testing.T) {
		repo := factory(t)
		seed(t, repo)
		require.NoError(t, repo.UpdateWhiteboardCompletion(ctx, "W2", true, "bob"))
		require.NoError(t, repo.UpdateWhiteboardCompletion(ctx, "W2", true, ""))
		require.NoError(t, repo.UpdateWhiteboardCompletion(ctx, "W2", false, ""))

		whiteboard, err := repo.FindWhiteboard(ctx, "W2")
		require.NoError(t, err)
		assert.False(t, whiteboard.Complete)
		assert.Equal(t, "bob", whiteboard.Contractor)

		assert.ErrorIs(t, repo.UpdateWhiteboardCompletion(ctx, "nope", true, ""), errs.ErrWhiteboardNotFound)
	})

	t.Run("ContractorNotDuplicated", func(t *testing.T) {
		repo := factory(t)
		_, created, err := repo.CreateContractorIfAbsent(ctx, "carol", at)
		require.NoError(t, err)
		assert.True(t, created)

		again, created, err := repo.CreateContractorIfAbsent(ctx, "carol", at.Add(time.Hour))
		require.NoError(t, err)
		assert.False(t, created)
		assert.True(t, again.LastProcessed.Equal(at))
	})

	t.Run("ExportRowsOrdered", func(t *testing.T) {
		repo := factory(t)
		seed(t, repo)
		_, err := repo.InsertChunk(ctx, newChunk("b1", "W2", "x", at))
		require.NoError(t, err)
		_, err = repo.InsertChunk(ctx, newChunk("a1", "W1", "x", at))
		require.NoError(t, err)
		_, err = repo.InsertChunk(ctx, newChunk("a2", "W1", "x", at))
		require.NoError(t, err)

		rows, err := repo.ListExportRows(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, []string{"a1", "a2", "b1"}, []string{rows[0].ChunkID, rows[1].ChunkID, rows[2].ChunkID})
		assert.Equal(t, "W1", rows[0].WhiteboardID)
	})

	t.Run("Reset", func(t *testing.T) {
		repo := factory(t)
		seed(t, repo)
		require.NoError(t, repo.UpdateWhiteboardCompletion(ctx, "W1", true, "dave"))
		require.NoError(t, repo.ResetWhiteboards(ctx))

		whiteboard, err := repo.FindWhiteboard(ctx, "W1")
		require.NoError(t, err)
		assert.False(t, whiteboard.Complete)
		assert.Empty(t, whiteboard.Contractor)
	})
}
