package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"whiteboardLabeler/configs"
	"whiteboardLabeler/internal/enums"
	"whiteboardLabeler/internal/errs"
	"whiteboardLabeler/internal/models"
	"whiteboardLabeler/internal/repositories/jsonfile"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.AnnotationEvent
	err    error
}

func (rp *recordingPublisher) Publish(_ context.Context, event *models.AnnotationEvent) error {
	rp.mu.Lock()
	defer rp.mu.Unlock()
	rp.events = append(rp.events, *event)
	return rp.err
}

type fakeFileManager struct {
	name    string
	bucket  string
	content []byte
	err     error
}

func (fm *fakeFileManager) UploadFile(_ context.Context, fileName string, file io.Reader, _ int64, _ string, bucketName string) (string, error) {
	if fm.err != nil {
		return "", fm.err
	}
	content, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	fm.name, fm.bucket, fm.content = fileName, bucketName, content
	return "http://files/" + bucketName + "/" + fileName, nil
}

type fixture struct {
	repo       *jsonfile.Repository
	publisher  *recordingPublisher
	whiteboard *WhiteboardService
	auth       *AuthenticationService
	export     *ExportService
	imports    *ImportService
	files      *fakeFileManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := zap.NewNop()
	repo, err := jsonfile.Open(filepath.Join(t.TempDir(), "db.json"), log)
	require.NoError(t, err)

	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("session:\n  mode: plain\n"), 0o644))
	cfg, err := configs.Load(cfgFile)
	require.NoError(t, err)

	publisher := &recordingPublisher{}
	files := &fakeFileManager{}
	f := &fixture{
		repo:       repo,
		publisher:  publisher,
		whiteboard: NewWhiteboardService(repo, publisher, log),
		auth:       NewAuthenticationService(repo, cfg, log),
		export:     NewExportService(repo, NewFileManagerService(files, enums.FILE_BUCKET_EXPORTS), log),
		imports:    NewImportService(repo, log),
		files:      files,
	}

	_, err = f.imports.ImportCSV(context.Background(), strings.NewReader("id,image_url\nW1,https://img/1.png\nW2,https://img/2.png\n"))
	require.NoError(t, err)
	return f
}

func chunkRequest() *models.CreateChunkRequest {
	return &models.CreateChunkRequest{
		Coordinates:   &models.Coordinates{X: 1, Y: 2, Width: 3, Height: 4},
		Transcription: "7",
		Confidence:    models.ConfidenceHigh,
		Contractor:    "alice",
	}
}

func TestAddChunkAppendsWithFreshID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.whiteboard.AddChunk(ctx, "W1", chunkRequest(), "alice")
	require.NoError(t, err)
	second, err := f.whiteboard.AddChunk(ctx, "W1", chunkRequest(), "alice")
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "W1", second.WhiteboardID)
	assert.False(t, second.CreatedAt.IsZero())

	whiteboard, err := f.whiteboard.GetWhiteboard(ctx, "W1")
	require.NoError(t, err)
	require.Len(t, whiteboard.Chunks, 2)
	assert.Equal(t, second.ID, whiteboard.Chunks[1].ID)
	assert.Equal(t, models.Coordinates{X: 1, Y: 2, Width: 3, Height: 4}, whiteboard.Chunks[1].Coordinates)
}

func TestAddChunkBumpsKnownContractor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _, err := f.auth.Authenticate(ctx, "alice")
	require.NoError(t, err)

	chunk, err := f.whiteboard.AddChunk(ctx, "W2", chunkRequest(), "alice")
	require.NoError(t, err)

	contractor, err := f.repo.FindContractor(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, contractor)
	assert.Equal(t, 1, contractor.Processed)
	assert.True(t, contractor.LastProcessed.Equal(chunk.CreatedAt))
}

func TestAddChunkUnknownWhiteboard(t *testing.T) {
	f := newFixture(t)
	_, err := f.whiteboard.AddChunk(context.Background(), "missing", chunkRequest(), "alice")
	assert.ErrorIs(t, err, errs.ErrWhiteboardNotFound)
	assert.Empty(t, f.publisher.events)
}

func TestDeleteChunkTwiceIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	chunk, err := f.whiteboard.AddChunk(ctx, "W1", chunkRequest(), "alice")
	require.NoError(t, err)

	require.NoError(t, f.whiteboard.DeleteChunk(ctx, "W1", chunk.ID, "alice"))
	whiteboard, err := f.whiteboard.GetWhiteboard(ctx, "W1")
	require.NoError(t, err)
	assert.Empty(t, whiteboard.Chunks)

	assert.ErrorIs(t, f.whiteboard.DeleteChunk(ctx, "W1", chunk.ID, "alice"), errs.ErrWhiteboardOrChunkNotFound)
}

func TestSetCompleteLastWriteWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.whiteboard.SetComplete(ctx, "W1", true, "alice"))
	require.NoError(t, f.whiteboard.SetComplete(ctx, "W1", false, "alice"))

	whiteboard, err := f.whiteboard.GetWhiteboard(ctx, "W1")
	require.NoError(t, err)
	assert.False(t, whiteboard.Complete)
	assert.ErrorIs(t, f.whiteboard.SetComplete(ctx, "nope", true, ""), errs.ErrWhiteboardNotFound)
}

func TestMutationsPublishEvents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	chunk, err := f.whiteboard.AddChunk(ctx, "W1", chunkRequest(), "alice")
	require.NoError(t, err)
	require.NoError(t, f.whiteboard.DeleteChunk(ctx, "W1", chunk.ID, "alice"))
	require.NoError(t, f.whiteboard.SetComplete(ctx, "W1", true, "alice"))

	require.Len(t, f.publisher.events, 3)
	assert.Equal(t, enums.EVENT_CHUNK_CREATED, f.publisher.events[0].Event)
	assert.Equal(t, chunk.ID, f.publisher.events[0].ChunkID)
	assert.Equal(t, enums.EVENT_CHUNK_DELETED, f.publisher.events[1].Event)
	assert.Equal(t, enums.EVENT_WHITEBOARD_COMPLETE, f.publisher.events[2].Event)
	require.NotNil(t, f.publisher.events[2].Complete)
	assert.True(t, *f.publisher.events[2].Complete)
}

func TestPublishFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errors.New("redis down")
	_, err := f.whiteboard.AddChunk(context.Background(), "W1", chunkRequest(), "alice")
	assert.NoError(t, err)
}

func TestAuthenticateCreatesOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	contractor, token, err := f.auth.Authenticate(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", token)
	assert.Equal(t, 0, contractor.Processed)

	_, _, err = f.auth.Authenticate(ctx, "bob")
	require.NoError(t, err)

	content, err := os.ReadFile(f.repo.Path())
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(content), `"name": "bob"`))

	name, err := f.auth.CurrentSession(token)
	require.NoError(t, err)
	assert.Equal(t, "bob", name)

	_, err = f.auth.CurrentSession("")
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)
}

func TestExportEmptyIsHeaderOnly(t *testing.T) {
	log := zap.NewNop()
	repo, err := jsonfile.Open(filepath.Join(t.TempDir(), "db.json"), log)
	require.NoError(t, err)

	content, err := NewExportService(repo, nil, log).ExportCSV(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "whiteboardId,chunkId,x,y,width,height,transcription,confidence,contractor,createdAt\n", string(content))
}

func TestExportQuotesTranscription(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	request := chunkRequest()
	request.Transcription = "a, \"b\"\nc"
	chunk, err := f.whiteboard.AddChunk(ctx, "W2", request, "alice")
	require.NoError(t, err)
	_, err = f.whiteboard.AddChunk(ctx, "W1", chunkRequest(), "alice")
	require.NoError(t, err)

	content, err := f.export.ExportCSV(ctx)
	require.NoError(t, err)

	lines := string(content)
	assert.Contains(t, lines, `"a, ""b""`+"\n"+`c"`)
	assert.Less(t, strings.Index(lines, "W1,"), strings.Index(lines, "W2,"+chunk.ID))
}

func TestArchiveCSV(t *testing.T) {
	f := newFixture(t)
	f.export.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	url, err := f.export.ArchiveCSV(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "http://files/exports/export-20240102T030405.000Z.csv", url)
	assert.Equal(t, enums.FILE_BUCKET_EXPORTS, f.files.bucket)
	assert.True(t, bytes.HasPrefix(f.files.content, []byte("whiteboardId,chunkId")))

	f.files.err = errors.New("minio down")
	_, err = f.export.ArchiveCSV(context.Background())
	assert.ErrorIs(t, err, errs.ErrUnableToUploadFile)

	_, err = NewExportService(f.repo, nil, zap.NewNop()).ArchiveCSV(context.Background())
	assert.ErrorIs(t, err, errs.ErrArchiveDisabled)
}

func TestParseWhiteboardsCSV(t *testing.T) {
	whiteboards, err := ParseWhiteboardsCSV(strings.NewReader("image_url,id,extra\nhttps://a,A,x\n,,\nhttps://b, B ,y\n"))
	require.NoError(t, err)
	require.Len(t, whiteboards, 2)
	assert.Equal(t, "A", whiteboards[0].ID)
	assert.Equal(t, "https://a", whiteboards[0].ImageURL)
	assert.Equal(t, "B", whiteboards[1].ID)

	_, err = ParseWhiteboardsCSV(strings.NewReader("name,url\nx,y\n"))
	assert.ErrorIs(t, err, errs.ErrInvalidImportFile)

	_, err = ParseWhiteboardsCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, errs.ErrInvalidImportFile)
}

func TestImportSkipsExistingAndReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	n, err := f.imports.ImportCSV(ctx, strings.NewReader("id,image_url\nW1,dup\nW3,https://img/3.png\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, f.whiteboard.SetComplete(ctx, "W3", true, "alice"))
	require.NoError(t, f.imports.Reset(ctx))

	list, err := f.whiteboard.ListWhiteboards(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for _, summary := range list {
		assert.False(t, summary.Complete)
		assert.Empty(t, summary.Contractor)
	}
}
