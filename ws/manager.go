package ws

import (
	"sync"

	"gigflow_backend/internal/logger"
	"gigflow_backend/internal/models"
)

// Verifier resolves a credential to the user id it was issued for.
type Verifier interface {
	Verify(credential string) (string, error)
}

// Manager is the notification bus: it owns the registry of live sessions
// keyed by user id and fans new notifications out to them.
type Manager struct {
	verifier   Verifier
	sendBuffer int

	mu       sync.RWMutex
	sessions map[string]map[string]*Session // userID -> sessionID -> session
}

func NewManager(verifier Verifier, sendBuffer int) *Manager {
	if sendBuffer < 1 {
		sendBuffer = 1
	}
	return &Manager{
		verifier:   verifier,
		sendBuffer: sendBuffer,
		sessions:   make(map[string]map[string]*Session),
	}
}

// Connect authenticates the credential and registers a new session.
func (m *Manager) Connect(credential string) (*Session, error) {
	session := newSession(m.sendBuffer)

	userID, err := m.verifier.Verify(credential)
	if err != nil {
		session.close()
		logger.RealtimeLog("connect_rejected", "", session.ID, "error", err.Error())
		return nil, err
	}
	session.UserID = userID

	m.mu.Lock()
	userSessions, ok := m.sessions[userID]
	if !ok {
		userSessions = make(map[string]*Session)
		m.sessions[userID] = userSessions
	}
	userSessions[session.ID] = session
	session.state.Store(int32(StateConnected))
	total := len(userSessions)
	m.mu.Unlock()

	logger.RealtimeLog("connected", userID, session.ID, "user_sessions", total)
	return session, nil
}

// OnNotification registers cb for every notification delivered to s.
// Callbacks run on the session's dispatch goroutine, one at a time.
func (m *Manager) OnNotification(s *Session, cb func(*models.Notification)) {
	if s == nil || cb == nil {
		return
	}
	s.subscribe(cb)
}

// Disconnect unregisters the session. Calling it twice is a no-op.
func (m *Manager) Disconnect(s *Session) {
	if s == nil {
		return
	}

	m.mu.Lock()
	if userSessions, ok := m.sessions[s.UserID]; ok {
		delete(userSessions, s.ID)
		if len(userSessions) == 0 {
			delete(m.sessions, s.UserID)
		}
	}
	m.mu.Unlock()

	if s.close() {
		logger.RealtimeLog("disconnected", s.UserID, s.ID)
	}
}

// Publish hands n to every live session of its user without blocking. A
// session whose queue is full is disconnected; its client recovers the
// missed notifications from the stored list.
func (m *Manager) Publish(n *models.Notification) {
	if n == nil {
		return
	}

	var overflowed []*Session

	m.mu.RLock()
	for _, s := range m.sessions[n.UserID] {
		if !s.enqueue(n) {
			overflowed = append(overflowed, s)
		}
	}
	m.mu.RUnlock()

	for _, s := range overflowed {
		logger.RealtimeLog("dropped_slow_session", s.UserID, s.ID, "notification_id", n.ID)
		m.Disconnect(s)
	}
}

// SessionCount returns the number of live sessions for a user.
func (m *Manager) SessionCount(userID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions[userID])
}

func (m *Manager) IsUserConnected(userID string) bool {
	return m.SessionCount(userID) > 0
}

// Shutdown disconnects every session.
func (m *Manager) Shutdown() {
	m.mu.RLock()
	var all []*Session
	for _, userSessions := range m.sessions {
		for _, s := range userSessions {
			all = append(all, s)
		}
	}
	m.mu.RUnlock()

	for _, s := range all {
		m.Disconnect(s)
	}
}
