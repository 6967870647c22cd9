// accounts - пакет с операциями регистрации и управления учетными записями.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abezemskiy/badgegate/internal/common/identity/tools/checker"
	"github.com/abezemskiy/badgegate/internal/common/identity/tools/hasher"
	"github.com/abezemskiy/badgegate/internal/common/identity/tools/id"
	"github.com/abezemskiy/badgegate/internal/repositories/identity"
	"github.com/abezemskiy/badgegate/internal/server/logger"
	"github.com/abezemskiy/badgegate/internal/server/storage"
	"go.uber.org/zap"
)

// DefaultTimeout - время ожидания ответа хранилища по умолчанию.
const DefaultTimeout = 5 * time.Second

// Options - параметры сервиса.
type Options struct {
	Cost    int              // стоимость bcrypt
	Timeout time.Duration    // время ожидания ответа хранилища на один вызов
	Now     func() time.Time // источник текущего времени
}

// Service - регистрация пользователей и операции администратора над учетными записями.
type Service struct {
	stor    storage.IAccountStorage
	cost    int
	timeout time.Duration
	now     func() time.Time
}

// NewService - создает сервис учетных записей.
func NewService(stor storage.IAccountStorage, opts Options) *Service {
	s := &Service{
		stor:    stor,
		cost:    opts.Cost,
		timeout: opts.Timeout,
		now:     opts.Now,
	}
	if s.cost <= 0 {
		s.cost = hasher.DefaultCost
	}
	if s.timeout <= 0 {
		s.timeout = DefaultTimeout
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// SignUp - регистрирует нового пользователя с ролью identity.RoleOfficer.
// Email приводится к нижнему регистру до сохранения.
func (s *Service) SignUp(ctx context.Context, data identity.SignUpData) (identity.Account, error) {
	return s.register(ctx, data, identity.Profile{Role: identity.RoleOfficer, Status: identity.StatusActive})
}

// Create - создает учетную запись от имени администратора с указанной ролью, статусом и профилем.
// По умолчанию создается активная учетная запись с ролью identity.RoleOfficer.
func (s *Service) Create(ctx context.Context, data identity.NewAccountData) (identity.Account, error) {
	profile := trimProfile(data.Profile)
	if profile.Role == "" {
		profile.Role = identity.RoleOfficer
	}
	if profile.Status == "" {
		profile.Status = identity.StatusActive
	}
	if !checker.CheckRole(profile.Role) {
		return identity.Account{}, fmt.Errorf("%w, unknown role %q", identity.ErrInvalidInput, profile.Role)
	}
	if !identity.ValidStatus(profile.Status) {
		return identity.Account{}, fmt.Errorf("%w, unknown status %q", identity.ErrInvalidInput, profile.Status)
	}
	return s.register(ctx, data.SignUpData, profile)
}

func (s *Service) register(ctx context.Context, data identity.SignUpData, profile identity.Profile) (identity.Account, error) {
	name := strings.TrimSpace(data.Name)
	email := checker.NormalizeEmail(data.Email)

	if !checker.CheckName(name) || email == "" || data.Password == "" {
		return identity.Account{}, fmt.Errorf("%w, all fields are required", identity.ErrInvalidInput)
	}
	if err := checkLengths(name, email, profile); err != nil {
		return identity.Account{}, err
	}
	if !checker.CheckEmail(email) {
		return identity.Account{}, fmt.Errorf("%w, email is not valid", identity.ErrInvalidInput)
	}
	if !checker.CheckPassword(data.Password) {
		return identity.Account{}, fmt.Errorf("%w, password must not exceed %d bytes", identity.ErrInvalidInput, checker.MaxPasswordBytes)
	}

	hash, err := hasher.HashPassword(data.Password, s.cost)
	if err != nil {
		return identity.Account{}, fmt.Errorf("hash password error, %w", err)
	}
	accountID, err := id.GenerateID()
	if err != nil {
		return identity.Account{}, fmt.Errorf("generate account id error, %w", err)
	}

	acc := identity.Account{
		ID:         accountID,
		Name:       name,
		Email:      email,
		Hash:       hash,
		Role:       profile.Role,
		Department: profile.Department,
		Title:      profile.Title,
		BadgeID:    profile.BadgeID,
		Phone:      profile.Phone,
		Status:     profile.Status,
		CreatedAt:  s.now().UTC(),
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.stor.Register(ctx, acc); err != nil {
		if errors.Is(err, identity.ErrDuplicateAccount) {
			return identity.Account{}, identity.ErrDuplicateAccount
		}
		return identity.Account{}, identity.StorageFailure(err)
	}
	return acc, nil
}

// List - выборка учетных записей для администратора.
func (s *Service) List(ctx context.Context, filter identity.AccountFilter) ([]identity.Account, error) {
	if filter.Role != "" && !checker.CheckRole(filter.Role) {
		return nil, fmt.Errorf("%w, unknown role %q", identity.ErrInvalidInput, filter.Role)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	list, err := s.stor.ListAccounts(ctx, filter)
	if err != nil {
		return nil, identity.StorageFailure(err)
	}
	return list, nil
}

// Update - изменяет имя, роль, статус и профиль учетной записи.
// Пустой статус оставляет текущее значение.
func (s *Service) Update(ctx context.Context, accountID string, upd identity.AccountUpdate) (identity.Account, error) {
	upd.Name = strings.TrimSpace(upd.Name)
	upd.Profile = trimProfile(upd.Profile)
	if !checker.CheckName(upd.Name) {
		return identity.Account{}, fmt.Errorf("%w, name is required", identity.ErrInvalidInput)
	}
	if err := checkLengths(upd.Name, "", upd.Profile); err != nil {
		return identity.Account{}, err
	}
	if !checker.CheckRole(upd.Role) {
		return identity.Account{}, fmt.Errorf("%w, unknown role %q", identity.ErrInvalidInput, upd.Role)
	}
	if upd.Status != "" && !identity.ValidStatus(upd.Status) {
		return identity.Account{}, fmt.Errorf("%w, unknown status %q", identity.ErrInvalidInput, upd.Status)
	}
	if !id.Valid(accountID) {
		return identity.Account{}, identity.ErrAccountNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	acc, ok, err := s.stor.UpdateAccount(ctx, accountID, upd)
	if err != nil {
		return identity.Account{}, identity.StorageFailure(err)
	}
	if !ok {
		return identity.Account{}, identity.ErrAccountNotFound
	}
	return acc, nil
}

// Delete - удаляет учетную запись. Администратор не может удалить собственную учетную запись.
func (s *Service) Delete(ctx context.Context, actorID, accountID string) error {
	if actorID == accountID {
		return fmt.Errorf("%w, you cannot delete your own account", identity.ErrInvalidInput)
	}
	if !id.Valid(accountID) {
		return identity.ErrAccountNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ok, err := s.stor.DeleteAccount(ctx, accountID)
	if err != nil {
		return identity.StorageFailure(err)
	}
	if !ok {
		return identity.ErrAccountNotFound
	}
	return nil
}

// EnsureAdmin - создает учетную запись администратора, если учетной записи с таким email еще нет.
// Существующая учетная запись не изменяется.
func (s *Service) EnsureAdmin(ctx context.Context, data identity.SignUpData) error {
	_, err := s.Create(ctx, identity.NewAccountData{
		SignUpData: data,
		Profile:    identity.Profile{Role: identity.RoleAdmin},
	})
	if errors.Is(err, identity.ErrDuplicateAccount) {
		logger.ServerLog.Info("administrator account already exists", zap.String("email", checker.NormalizeEmail(data.Email)))
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed administrator account error, %w", err)
	}
	logger.ServerLog.Info("administrator account created", zap.String("email", checker.NormalizeEmail(data.Email)))
	return nil
}

func trimProfile(p identity.Profile) identity.Profile {
	return identity.Profile{
		Role:       strings.TrimSpace(p.Role),
		Department: strings.TrimSpace(p.Department),
		Title:      strings.TrimSpace(p.Title),
		BadgeID:    strings.TrimSpace(p.BadgeID),
		Phone:      strings.TrimSpace(p.Phone),
		Status:     strings.TrimSpace(p.Status),
	}
}

// checkLengths - значения должны помещаться в столбцы таблицы accounts.
func checkLengths(name, email string, p identity.Profile) error {
	fields := []struct {
		field string
		value string
		max   int
	}{
		{"name", name, checker.MaxNameLength},
		{"email", email, checker.MaxEmailLength},
		{"department", p.Department, checker.MaxProfileLength},
		{"title", p.Title, checker.MaxProfileLength},
		{"badge id", p.BadgeID, checker.MaxBadgeLength},
		{"phone", p.Phone, checker.MaxPhoneLength},
	}
	for _, f := range fields {
		if !checker.CheckLength(f.value, f.max) {
			return fmt.Errorf("%w, %s must not exceed %d characters", identity.ErrInvalidInput, f.field, f.max)
		}
	}
	return nil
}
