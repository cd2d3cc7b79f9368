package progress

import (
	"context"
	"sync"
)

// MinPercentStep is the smallest percent change worth an edit
const MinPercentStep = 5.0

// State is the lifecycle state of a Session
type State int

const (
	StateNone State = iota
	StateDownloading
	StateSending
	StateDone
)

// ShouldUpdate reports whether moving from last to next warrants an edit
func ShouldUpdate(last, next float64) bool {
	return next-last >= MinPercentStep || next >= 100
}

// Session tracks the status message of one in-flight request.
// Report may be called from any goroutine; all edits happen on the
// session's own goroutine, in order.
type Session struct {
	manager   *Manager
	ctx       context.Context
	chatID    int64
	messageID int

	mu          sync.Mutex
	state       State
	lastPercent float64
	pending     float64
	hasPending  bool

	notify   chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// Start sends the "downloading" message and begins a Session
func (m *Manager) Start(ctx context.Context, chatID int64) (*Session, error) {
	messageID, err := m.SendDownloading(ctx, chatID)
	if err != nil {
		return nil, err
	}

	s := &Session{
		manager:   m,
		ctx:       ctx,
		chatID:    chatID,
		messageID: messageID,
		state:     StateDownloading,
		notify:    make(chan struct{}, 1),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}

	go s.run()

	return s, nil
}

// MessageID returns the telegram ID of the status message
func (s *Session) MessageID() int {
	return s.messageID
}

// State returns the current state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastPercent returns the last percent shown to the user
func (s *Session) LastPercent() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPercent
}

// Report records percent and wakes the session goroutine. It never blocks;
// only the newest value is kept while an edit is in flight.
func (s *Session) Report(percent float64) {
	s.mu.Lock()
	if s.state != StateDownloading {
		s.mu.Unlock()
		return
	}
	s.pending = percent
	s.hasPending = true
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

func (s *Session) run() {
	defer close(s.done)

	for {
		select {
		case <-s.notify:
			s.flush()
		case <-s.stop:
			s.flush()
			return
		}
	}
}

func (s *Session) flush() {
	s.mu.Lock()
	if !s.hasPending {
		s.mu.Unlock()
		return
	}
	percent := s.pending
	s.hasPending = false
	if !ShouldUpdate(s.lastPercent, percent) {
		s.mu.Unlock()
		return
	}
	s.lastPercent = percent
	s.mu.Unlock()

	s.manager.UpdateDownloadingPercent(s.ctx, s.chatID, s.messageID, percent)
}

// transition stops accepting reports and waits for pending edits
func (s *Session) transition(next State) {
	s.mu.Lock()
	s.state = next
	s.mu.Unlock()

	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}

// Sending switches the status message to "sending"
func (s *Session) Sending(ctx context.Context) bool {
	s.transition(StateSending)
	return s.manager.UpdateSending(ctx, s.chatID, s.messageID)
}

// Complete deletes the status message
func (s *Session) Complete(ctx context.Context) bool {
	s.transition(StateDone)
	return s.manager.DeleteProgress(ctx, s.chatID, s.messageID)
}

// Fail replaces the status message with an error, TextError when message is empty
func (s *Session) Fail(ctx context.Context, message string) bool {
	s.transition(StateDone)
	if message == "" {
		message = TextError
	}
	return s.manager.UpdateProgress(ctx, s.chatID, s.messageID, ErrorPrefix+message)
}

// Close stops the session goroutine. Safe to call more than once.
func (s *Session) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}
