package api

import (
	"sync"
	"time"

	"orderdesk/internal/notify"
	"orderdesk/internal/register"
	"orderdesk/internal/wizard"

	"github.com/google/uuid"
)

// posSession pairs a register with the toast board shown in its views.
// mu serialises every action on the session.
type posSession struct {
	mu        sync.Mutex
	id        string
	register  *register.Register
	board     *notify.Board
	createdAt time.Time
}

// SessionView is the JSON shape of a session returned by every endpoint.
type SessionView struct {
	ID string `json:"id"`
	wizard.Session
	Total        string               `json:"total"`
	ItemCount    int                  `json:"item_count"`
	ChangeDue    string               `json:"change_due"`
	Notification *notify.Notification `json:"notification,omitempty"`
	Receipt      *wizard.Receipt      `json:"receipt,omitempty"`
}

func (s *posSession) view() SessionView {
	state := s.register.Session()
	v := SessionView{
		ID:        s.id,
		Session:   state,
		Total:     state.Cart.Total().String(),
		ItemCount: state.Cart.ItemCount(),
		ChangeDue: state.ChangeDue(),
	}
	if n, ok := s.board.Active(); ok {
		v.Notification = &n
	}
	if r, ok := s.register.Receipt(); ok {
		v.Receipt = &r
	}
	return v
}

// SessionStore keeps every open session in memory, keyed by a random id.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*posSession
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*posSession)}
}

// Create allocates an id and stores the session built by build.
func (st *SessionStore) Create(build func(id string) *posSession) *posSession {
	id := uuid.NewString()
	s := build(id)

	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[id] = s
	return s
}

// Get looks up a session by id.
func (st *SessionStore) Get(id string) (*posSession, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Delete drops a session; it reports whether one was present.
func (st *SessionStore) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return false
	}
	delete(st.sessions, id)
	return true
}

// Len is the number of open sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
