package progress

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessenger struct {
	mu        sync.Mutex
	nextID    int
	sent      []string
	edits     []string
	deleted   []int
	sendErr   error
	editErr   error
	deleteErr error
	editDelay time.Duration
}

func (f *fakeMessenger) SendMessage(_ context.Context, _ int64, text string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return 0, f.sendErr
	}
	f.nextID++
	f.sent = append(f.sent, text)
	return f.nextID, nil
}

func (f *fakeMessenger) EditMessageText(_ context.Context, _ int64, _ int, text string) error {
	if f.editDelay > 0 {
		time.Sleep(f.editDelay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.editErr != nil {
		return f.editErr
	}
	f.edits = append(f.edits, text)
	return nil
}

func (f *fakeMessenger) DeleteMessage(_ context.Context, _ int64, messageID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeMessenger) Edits() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.edits...)
}

func TestDownloadingText(t *testing.T) {
	tests := []struct {
		percent float64
		want    string
	}{
		{0, "Đang tải video... 0%"},
		{49.6, "Đang tải video... 50%"},
		{99, "Đang tải video... 99%"},
		{100, "Đang tải video... 100%"},
		{-3, "Đang tải video... 0%"},
		{140, "Đang tải video... 100%"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DownloadingText(tt.percent))
	}
}

func TestShouldUpdate(t *testing.T) {
	assert.False(t, ShouldUpdate(0, 4.9))
	assert.True(t, ShouldUpdate(0, 5))
	assert.False(t, ShouldUpdate(50, 52))
	assert.True(t, ShouldUpdate(97, 100))
	assert.True(t, ShouldUpdate(100, 100))
}

func TestManager_FailuresAreSwallowed(t *testing.T) {
	messenger := &fakeMessenger{
		editErr:   errors.New("Bad Request: message is not modified"),
		deleteErr: errors.New("Bad Request: message to delete not found"),
	}
	m := NewManager(messenger, zerolog.Nop())
	ctx := context.Background()

	assert.False(t, m.UpdateProgress(ctx, 1, 10, "x"))
	assert.False(t, m.DeleteProgress(ctx, 1, 10))
	assert.False(t, m.UpdateSending(ctx, 1, 10))
}

func TestManager_SendProgressError(t *testing.T) {
	messenger := &fakeMessenger{sendErr: errors.New("network down")}
	m := NewManager(messenger, zerolog.Nop())

	_, err := m.SendDownloading(context.Background(), 1)
	assert.Error(t, err)
}

func TestManager_NoMessenger(t *testing.T) {
	m := NewManager(nil, zerolog.Nop())
	ctx := context.Background()

	_, err := m.SendProgress(ctx, 1, "x")
	assert.Error(t, err)
	assert.False(t, m.UpdateProgress(ctx, 1, 1, "x"))
	assert.False(t, m.DeleteProgress(ctx, 1, 1))
}

func TestManager_FinalizeProgress(t *testing.T) {
	messenger := &fakeMessenger{}
	m := NewManager(messenger, zerolog.Nop())
	ctx := context.Background()

	assert.True(t, m.FinalizeProgress(ctx, 1, 5, false, ""))
	assert.True(t, m.FinalizeProgress(ctx, 1, 6, true, ""))

	assert.Equal(t, []string{TextCompleted}, messenger.Edits())
	assert.Equal(t, []int{6}, messenger.deleted)
}

func TestSession_ThrottlesAndDrainsLastValue(t *testing.T) {
	messenger := &fakeMessenger{}
	m := NewManager(messenger, zerolog.Nop())
	ctx := context.Background()

	s, err := m.Start(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{TextDownloading}, messenger.sent)
	assert.Equal(t, StateDownloading, s.State())

	for _, p := range []float64{1, 2, 3, 4} {
		s.Report(p)
	}
	s.Report(100)

	assert.True(t, s.Sending(ctx))
	assert.Equal(t, StateSending, s.State())
	assert.Equal(t, float64(100), s.LastPercent())

	edits := messenger.Edits()
	require.NotEmpty(t, edits)
	assert.Equal(t, TextSending, edits[len(edits)-1])
	assert.Equal(t, "Đang tải video... 100%", edits[len(edits)-2])
	for _, e := range edits {
		assert.NotEqual(t, "Đang tải video... 1%", e)
	}

	assert.True(t, s.Complete(ctx))
	assert.Equal(t, []int{s.MessageID()}, messenger.deleted)
	assert.Equal(t, StateDone, s.State())
}

func TestSession_ReportNeverBlocks(t *testing.T) {
	messenger := &fakeMessenger{editDelay: 50 * time.Millisecond}
	m := NewManager(messenger, zerolog.Nop())
	ctx := context.Background()

	s, err := m.Start(ctx, 1)
	require.NoError(t, err)
	defer s.Close()

	start := time.Now()
	for p := 0; p <= 99; p++ {
		s.Report(float64(p))
	}
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestSession_IgnoresReportsAfterTransition(t *testing.T) {
	messenger := &fakeMessenger{}
	m := NewManager(messenger, zerolog.Nop())
	ctx := context.Background()

	s, err := m.Start(ctx, 1)
	require.NoError(t, err)

	require.True(t, s.Sending(ctx))
	s.Report(60)
	s.Report(100)

	assert.Equal(t, []string{TextSending}, messenger.Edits())
}

func TestSession_Fail(t *testing.T) {
	messenger := &fakeMessenger{}
	m := NewManager(messenger, zerolog.Nop())
	ctx := context.Background()

	s, err := m.Start(ctx, 1)
	require.NoError(t, err)

	assert.True(t, s.Fail(ctx, "Video không tồn tại hoặc đã bị xóa"))
	assert.Equal(t, []string{"❌ Video không tồn tại hoặc đã bị xóa"}, messenger.Edits())

	// idempotent
	s.Close()
	s.Close()
}

func TestSession_EditFailureDoesNotStopSession(t *testing.T) {
	messenger := &fakeMessenger{editErr: errors.New("flood wait")}
	m := NewManager(messenger, zerolog.Nop())
	ctx := context.Background()

	s, err := m.Start(ctx, 1)
	require.NoError(t, err)

	s.Report(50)
	assert.False(t, s.Sending(ctx))
	assert.True(t, s.Complete(ctx))
}

type panickingMessenger struct {
	fakeMessenger
	panicSend bool
}

func (p *panickingMessenger) SendMessage(ctx context.Context, chatID int64, text string) (int, error) {
	if p.panicSend {
		panic("send exploded")
	}
	return p.fakeMessenger.SendMessage(ctx, chatID, text)
}

func (p *panickingMessenger) EditMessageText(context.Context, int64, int, string) error {
	panic("edit exploded")
}

func (p *panickingMessenger) DeleteMessage(context.Context, int64, int) error {
	panic("delete exploded")
}

func TestManager_PanicsAreSwallowed(t *testing.T) {
	m := NewManager(&panickingMessenger{panicSend: true}, zerolog.Nop())
	ctx := context.Background()

	require.NotPanics(t, func() {
		_, err := m.SendDownloading(ctx, 1)
		assert.Error(t, err)
		assert.False(t, m.UpdateSending(ctx, 1, 10))
		assert.False(t, m.DeleteProgress(ctx, 1, 10))
	})
}

func TestSession_PanickingEditDoesNotCrash(t *testing.T) {
	m := NewManager(&panickingMessenger{}, zerolog.Nop())
	ctx := context.Background()

	s, err := m.Start(ctx, 1)
	require.NoError(t, err)

	s.Report(50)
	s.Report(100)
	s.Close()

	assert.Equal(t, float64(100), s.LastPercent())
	assert.False(t, s.Fail(ctx, "x"))
}

func TestSession_FailWithoutMessage(t *testing.T) {
	messenger := &fakeMessenger{}
	m := NewManager(messenger, zerolog.Nop())
	ctx := context.Background()

	s, err := m.Start(ctx, 1)
	require.NoError(t, err)

	assert.True(t, s.Fail(ctx, ""))
	assert.Equal(t, []string{ErrorPrefix + TextError}, messenger.Edits())
}
