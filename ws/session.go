package ws

import (
	"sync"
	"sync/atomic"

	"gigflow_backend/internal/models"

	"github.com/google/uuid"
)

type SessionState int32

const (
	StateDisconnected SessionState = iota
	StateConnecting
	StateConnected
)

func (s SessionState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Session is one live subscription of a user to their notifications.
// Delivery is in enqueue order through a single dispatch goroutine.
type Session struct {
	ID     string
	UserID string

	state     atomic.Int32
	queue     chan *models.Notification
	done      chan struct{}
	closeOnce sync.Once

	mu         sync.Mutex
	callbacks  []func(*models.Notification)
	dispatched bool
}

func newSession(buffer int) *Session {
	s := &Session{
		ID:    uuid.NewString(),
		queue: make(chan *models.Notification, buffer),
		done:  make(chan struct{}),
	}
	s.state.Store(int32(StateConnecting))
	return s
}

func (s *Session) State() SessionState {
	return SessionState(s.state.Load())
}

// Done is closed when the session is disconnected.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// enqueue never blocks. It reports false when the queue is full.
func (s *Session) enqueue(n *models.Notification) bool {
	select {
	case <-s.done:
		return true
	default:
	}

	select {
	case s.queue <- n:
		return true
	default:
		return false
	}
}

func (s *Session) subscribe(cb func(*models.Notification)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.callbacks = append(s.callbacks, cb)
	if !s.dispatched {
		s.dispatched = true
		go s.dispatch()
	}
}

func (s *Session) dispatch() {
	for {
		select {
		case <-s.done:
			return
		case n := <-s.queue:
			// done wins over a ready queue item
			select {
			case <-s.done:
				return
			default:
			}

			s.mu.Lock()
			callbacks := make([]func(*models.Notification), len(s.callbacks))
			copy(callbacks, s.callbacks)
			s.mu.Unlock()

			for _, cb := range callbacks {
				cb(n)
			}
		}
	}
}

// close moves the session to disconnected. Queued items are dropped.
func (s *Session) close() bool {
	closed := false
	s.closeOnce.Do(func() {
		s.state.Store(int32(StateDisconnected))
		close(s.done)
		closed = true
	})
	return closed
}
