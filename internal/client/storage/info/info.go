package info

import (
	"sync"

	"github.com/abezemskiy/badgegate/internal/repositories/identity"
)

// SessionInfo - потокобезопасная структура для хранения сведений о вошедшем пользователе (id, email, роль, имя).
type SessionInfo struct {
	mu    sync.RWMutex
	claim identity.Claim
	set   bool
}

// Set - сохраняет сведения о пользователе.
func (s *SessionInfo) Set(claim identity.Claim) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.claim = claim
	s.set = true
}

// Get - возвращает сведения о пользователе.
func (s *SessionInfo) Get() (identity.Claim, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.claim, s.set
}

// Clear - удаляет сведения о пользователе.
func (s *SessionInfo) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.claim = identity.Claim{}
	s.set = false
}

// NewSessionInfo - фабричная функция структуры SessionInfo.
func NewSessionInfo() *SessionInfo {
	return &SessionInfo{}
}
