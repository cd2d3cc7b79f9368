package buissines

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conte777/NewsFlow/services/video-bot/config"
	"github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/consts"
	"github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/downloader"
	"github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/dto"
	"github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/entities"
	videoerrors "github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/errors"
	"github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/progress"
	"github.com/Conte777/NewsFlow/services/video-bot/internal/domain/video/sender"
)

const testChatID int64 = 123456789

type fakeTransport struct {
	mu       sync.Mutex
	nextID   int
	sent     []string
	edits    []string
	deleted  []int
	videos   []string
	failText string
	videoErr error
	panicOn  string
	// panicSendOn makes SendMessage panic for this text
	panicSendOn string
}

func (f *fakeTransport) SendMessage(_ context.Context, _ int64, text string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.panicSendOn == text {
		panic("transport exploded")
	}
	if f.failText == text {
		return 0, errors.New("connection reset by peer")
	}
	f.nextID++
	f.sent = append(f.sent, text)
	return f.nextID, nil
}

func (f *fakeTransport) EditMessageText(_ context.Context, _ int64, _ int, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.panicOn == text {
		panic("transport exploded")
	}
	f.edits = append(f.edits, text)
	return nil
}

func (f *fakeTransport) DeleteMessage(_ context.Context, _ int64, messageID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeTransport) SendVideo(_ context.Context, _ int64, filename string, video io.Reader) error {
	if _, err := io.Copy(io.Discard, video); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.videoErr != nil {
		return f.videoErr
	}
	f.videos = append(f.videos, filename)
	return nil
}

func (f *fakeTransport) lastEdit() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.edits) == 0 {
		return ""
	}
	return f.edits[len(f.edits)-1]
}

type fakeExtractor struct {
	events []entities.ProgressEvent
	size   int64
	err    error
	paths  []string
}

func (f *fakeExtractor) Extract(_ context.Context, req entities.ExtractRequest, onEvent func(entities.ProgressEvent)) error {
	f.paths = append(f.paths, req.OutputPath)
	for _, ev := range f.events {
		onEvent(ev)
	}
	if f.err != nil {
		return f.err
	}
	file, err := os.Create(req.OutputPath)
	if err != nil {
		return err
	}
	defer file.Close()
	return file.Truncate(f.size)
}

func newTestUseCase(t *testing.T, ex *fakeExtractor, transport *fakeTransport) *UseCase {
	t.Helper()
	logger := zerolog.Nop()
	cfg := &config.DownloadConfig{TempDir: t.TempDir(), MaxFileSize: config.DefaultMaxFileSize}

	uc := NewUseCase(
		downloader.NewService(ex, logger),
		sender.NewService(nil, logger),
		progress.NewManager(nil, logger),
		videoerrors.NewClassifier(logger),
		cfg,
		logger,
	)
	uc.SetSender(transport)
	return uc
}

func videoRequest(text string) *dto.VideoRequest {
	return &dto.VideoRequest{UserID: testChatID, ChatID: testChatID, Text: text}
}

func TestHandleVideoLink_Delivered(t *testing.T) {
	ex := &fakeExtractor{
		size: 10 * 1024 * 1024,
		events: []entities.ProgressEvent{
			{Status: entities.ProgressStatusDownloading, DownloadedBytes: 50, TotalBytes: 100},
			{Status: entities.ProgressStatusFinished},
		},
	}
	transport := &fakeTransport{}
	uc := newTestUseCase(t, ex, transport)

	result, err := uc.HandleVideoLink(context.Background(), videoRequest("https://www.youtube.com/watch?v=abc123"))
	require.NoError(t, err)

	assert.True(t, result.Delivered)
	assert.Equal(t, "youtube", result.Platform)
	assert.Equal(t, []string{progress.TextDownloading}, transport.sent)
	assert.Contains(t, transport.edits, "Đang tải video... 100%")
	assert.Equal(t, progress.TextSending, transport.lastEdit())
	assert.Equal(t, []int{1}, transport.deleted)
	require.Len(t, transport.videos, 1)

	require.Len(t, ex.paths, 1)
	assert.NoFileExists(t, ex.paths[0])
}

func TestHandleVideoLink_NoLink(t *testing.T) {
	ex := &fakeExtractor{}
	transport := &fakeTransport{}
	uc := newTestUseCase(t, ex, transport)

	for _, text := range []string{"hello there", "check out https://vimeo.com/123456789"} {
		result, err := uc.HandleVideoLink(context.Background(), videoRequest(text))
		require.NoError(t, err)

		assert.False(t, result.Delivered)
		assert.Equal(t, "unknown", result.Platform)
		assert.ErrorIs(t, result.Rejected, videoerrors.ErrNoLink)
	}

	assert.Equal(t, []string{consts.NoLinkMessage, consts.NoLinkMessage}, transport.sent)
	assert.Empty(t, ex.paths)
}

func TestHandleVideoLink_DownloadFailure(t *testing.T) {
	ex := &fakeExtractor{err: errors.New("ERROR: [youtube] abc: Video unavailable")}
	transport := &fakeTransport{}
	uc := newTestUseCase(t, ex, transport)

	result, err := uc.HandleVideoLink(context.Background(), videoRequest("https://www.youtube.com/watch?v=abc"))
	require.NoError(t, err)

	assert.False(t, result.Delivered)
	assert.Equal(t, "❌ Video không tồn tại hoặc đã bị xóa", transport.lastEdit())
	assert.Empty(t, transport.videos)
	assert.Empty(t, transport.deleted)
}

func TestHandleVideoLink_TooLarge(t *testing.T) {
	ex := &fakeExtractor{size: 60 * 1024 * 1024}
	transport := &fakeTransport{}
	uc := newTestUseCase(t, ex, transport)

	result, err := uc.HandleVideoLink(context.Background(), videoRequest("https://www.instagram.com/reel/Cxyz123/"))
	require.NoError(t, err)

	assert.False(t, result.Delivered)
	assert.Equal(t, "instagram", result.Platform)
	assert.Equal(t, progress.ErrorPrefix+sender.TooLargeMessage(60*1024*1024, config.DefaultMaxFileSize), transport.lastEdit())
	assert.Empty(t, transport.videos)
	require.Len(t, ex.paths, 1)
	assert.NoFileExists(t, ex.paths[0])
}

func TestHandleVideoLink_UploadFailure(t *testing.T) {
	ex := &fakeExtractor{size: 1024}
	transport := &fakeTransport{videoErr: errors.New("Request Entity Too Large")}
	uc := newTestUseCase(t, ex, transport)

	result, err := uc.HandleVideoLink(context.Background(), videoRequest("https://fb.watch/abc123/"))
	require.NoError(t, err)

	assert.False(t, result.Delivered)
	assert.Equal(t, "❌ Lỗi khi gửi video: Request Entity Too Large", transport.lastEdit())
	assert.NoFileExists(t, ex.paths[0])
}

func TestHandleVideoLink_StatusMessageFails(t *testing.T) {
	ex := &fakeExtractor{size: 1024}
	transport := &fakeTransport{failText: progress.TextDownloading}
	uc := newTestUseCase(t, ex, transport)

	result, err := uc.HandleVideoLink(context.Background(), videoRequest("https://youtu.be/abc"))
	require.NoError(t, err)

	assert.False(t, result.Delivered)
	assert.Equal(t, []string{"❌ Lỗi kết nối mạng, vui lòng thử lại sau"}, transport.sent)
	assert.Empty(t, ex.paths)
}

func TestHandleVideoLink_StatusEditPanicStillDelivers(t *testing.T) {
	ex := &fakeExtractor{size: 1024}
	transport := &fakeTransport{panicOn: progress.TextSending}
	uc := newTestUseCase(t, ex, transport)

	var result *dto.VideoResult
	require.NotPanics(t, func() {
		var err error
		result, err = uc.HandleVideoLink(context.Background(), videoRequest("https://youtu.be/abc"))
		assert.NoError(t, err)
	})

	assert.True(t, result.Delivered)
	assert.Len(t, transport.videos, 1)
	require.Len(t, ex.paths, 1)
	assert.NoFileExists(t, ex.paths[0])
}

func TestHandleVideoLink_UploadPanicRemovesArtifact(t *testing.T) {
	ex := &fakeExtractor{size: 1024}
	transport := &panickingUploadTransport{}
	uc := newTestUseCase(t, ex, &transport.fakeTransport)
	uc.SetSender(transport)

	result, err := uc.HandleVideoLink(context.Background(), videoRequest("https://youtu.be/abc"))
	require.NoError(t, err)

	assert.False(t, result.Delivered)
	assert.Equal(t, "❌ Lỗi khi gửi video: upload exploded", transport.lastEdit())
	require.Len(t, ex.paths, 1)
	assert.NoFileExists(t, ex.paths[0])
}

type panickingUploadTransport struct {
	fakeTransport
}

func (p *panickingUploadTransport) SendVideo(context.Context, int64, string, io.Reader) error {
	panic("upload exploded")
}

func TestHandleVideoLink_ReplyPanicBecomesError(t *testing.T) {
	transport := &fakeTransport{panicSendOn: consts.NoLinkMessage}
	uc := newTestUseCase(t, &fakeExtractor{}, transport)

	var result *dto.VideoResult
	require.NotPanics(t, func() {
		var err error
		result, err = uc.HandleVideoLink(context.Background(), videoRequest("hello"))
		assert.Error(t, err)
	})

	assert.False(t, result.Delivered)
	assert.ErrorIs(t, result.Rejected, videoerrors.ErrNoLink)
	assert.Empty(t, transport.sent)
}

func TestHandleVideoLink_NoTransport(t *testing.T) {
	logger := zerolog.Nop()
	uc := NewUseCase(
		downloader.NewService(&fakeExtractor{}, logger),
		sender.NewService(nil, logger),
		progress.NewManager(nil, logger),
		videoerrors.NewClassifier(logger),
		&config.DownloadConfig{TempDir: t.TempDir(), MaxFileSize: config.DefaultMaxFileSize},
		logger,
	)

	_, err := uc.HandleVideoLink(context.Background(), videoRequest("https://youtu.be/abc"))
	assert.ErrorIs(t, err, videoerrors.ErrSenderNotSet)
}

func TestCommands(t *testing.T) {
	uc := newTestUseCase(t, &fakeExtractor{}, &fakeTransport{})
	ctx := context.Background()

	resp, err := uc.HandleStart(ctx, &dto.CommandRequest{UserID: testChatID})
	require.NoError(t, err)
	assert.Equal(t, consts.WelcomeMessage, resp.Message)

	resp, err = uc.HandleHelp(ctx)
	require.NoError(t, err)
	assert.Contains(t, resp.Message, "50MB")

	resp, err = uc.HandleStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, consts.StatusMessage, resp.Message)
}
