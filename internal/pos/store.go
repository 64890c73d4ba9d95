package pos

import (
	"sync"

	"github.com/google/uuid"

	"github.com/khushiag23/POS-System/internal/checkout"
	"github.com/khushiag23/POS-System/internal/domain"
	"github.com/khushiag23/POS-System/internal/orders"
	"github.com/khushiag23/POS-System/internal/session"
)

// Workspace is everything one signed-in cashier works on. All fields are
// guarded by mu.
type Workspace struct {
	mu      sync.Mutex
	session session.Session
	cart    domain.Cart
	flow    checkout.Flow
	ledger  orders.Ledger
}

// Store keeps workspaces in memory for as long as their session lives.
type Store struct {
	mu         sync.RWMutex
	workspaces map[string]*Workspace
	newID      func() string
}

func NewStore() *Store {
	return &Store{
		workspaces: make(map[string]*Workspace),
		newID:      uuid.NewString,
	}
}

func (s *Store) Create(sess session.Session) string {
	id := s.newID()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.workspaces[id] = &Workspace{session: sess}
	return id
}

func (s *Store) Get(id string) (*Workspace, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.workspaces[id]
	return w, ok
}

// Delete drops the workspace and reports whether it existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.workspaces[id]
	delete(s.workspaces, id)
	return ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.workspaces)
}
