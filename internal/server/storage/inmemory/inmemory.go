package inmemory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/abezemskiy/badgegate/internal/repositories/identity"
)

// Store - потокобезопасное хранилище учетных записей в оперативной памяти.
// Используется, когда адрес СУБД не задан.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]identity.Account // учетные записи по идентификатору
	emails   map[string]string           // email в нижнем регистре -> идентификатор
}

// NewStore - возвращает пустое хранилище.
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]identity.Account),
		emails:   make(map[string]string),
	}
}

// Register - сохраняет учетную запись.
// Проверка уникальности email и вставка выполняются под одной блокировкой.
func (s *Store) Register(ctx context.Context, acc identity.Account) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w, %w", identity.ErrStorageUnavailable, err)
	}
	key := strings.ToLower(acc.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.emails[key]; ok {
		return identity.ErrDuplicateAccount
	}
	if _, ok := s.accounts[acc.ID]; ok {
		return fmt.Errorf("%w, account id %s already exists", identity.ErrStorageUnavailable, acc.ID)
	}
	s.accounts[acc.ID] = acc
	s.emails[key] = acc.ID
	return nil
}

// AccountByEmail - поиск учетной записи по email без учета регистра.
func (s *Store) AccountByEmail(ctx context.Context, email string) (identity.Account, bool, error) {
	if err := ctx.Err(); err != nil {
		return identity.Account{}, false, fmt.Errorf("%w, %w", identity.ErrStorageUnavailable, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[strings.ToLower(email)]
	if !ok {
		return identity.Account{}, false, nil
	}
	return s.accounts[id], true, nil
}

// AccountByID - поиск учетной записи по идентификатору.
func (s *Store) AccountByID(ctx context.Context, id string) (identity.Account, bool, error) {
	if err := ctx.Err(); err != nil {
		return identity.Account{}, false, fmt.Errorf("%w, %w", identity.ErrStorageUnavailable, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[id]
	return acc, ok, nil
}

// ListAccounts - выборка учетных записей в порядке создания.
func (s *Store) ListAccounts(ctx context.Context, filter identity.AccountFilter) ([]identity.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w, %w", identity.ErrStorageUnavailable, err)
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	s.mu.RLock()
	result := make([]identity.Account, 0, len(s.accounts))
	for _, acc := range s.accounts {
		if filter.Role != "" && acc.Role != filter.Role {
			continue
		}
		if search != "" && !matches(acc, search) {
			continue
		}
		result = append(result, acc)
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].Email < result[j].Email
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// UpdateAccount - заменяет имя, роль и поля профиля. Пустой статус оставляет текущее значение.
func (s *Store) UpdateAccount(ctx context.Context, id string, upd identity.AccountUpdate) (identity.Account, bool, error) {
	if err := ctx.Err(); err != nil {
		return identity.Account{}, false, fmt.Errorf("%w, %w", identity.ErrStorageUnavailable, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return identity.Account{}, false, nil
	}
	acc.Name = upd.Name
	acc.Role = upd.Role
	acc.Department = upd.Department
	acc.Title = upd.Title
	acc.BadgeID = upd.BadgeID
	acc.Phone = upd.Phone
	if upd.Status != "" {
		acc.Status = upd.Status
	}
	s.accounts[id] = acc
	return acc, true, nil
}

// DeleteAccount - удаляет учетную запись и освобождает email.
func (s *Store) DeleteAccount(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%w, %w", identity.ErrStorageUnavailable, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return false, nil
	}
	delete(s.accounts, id)
	delete(s.emails, strings.ToLower(acc.Email))
	return true, nil
}

func matches(acc identity.Account, search string) bool {
	for _, field := range []string{acc.Name, acc.Email, acc.Department, acc.Title, acc.BadgeID} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}
