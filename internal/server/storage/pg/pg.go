package pg

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/abezemskiy/badgegate/internal/repositories/identity"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // драйвер migrate для PostgreSQL
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// uniqueViolation - код ошибки PostgreSQL unique_violation.
const uniqueViolation = "23505"

//go:embed migrations/*.sql
var migrations embed.FS

// accountColumns - порядок столбцов, в котором читается учетная запись.
const accountColumns = `id, name, email, hash, role, department, title, badge_id, phone, status, created_at`

// Store - реализует интерфейс storage.IAccountStorage и позволяет взаимодествовать с СУБД PostgreSQL.
type Store struct {
	// Поле conn содержит объект соединения с СУБД
	conn *sql.DB
}

// NewStore - возвращает новый экземпляр PostgreSQL-хранилища.
func NewStore(conn *sql.DB) *Store {
	return &Store{
		conn: conn,
	}
}

// Migrate - подготавливает БД к работе, применяя встроенные миграции.
// Мигратор открывает собственное соединение по dsn и закрывает его по завершении.
func Migrate(dsn string) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("open migrations source error, %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return fmt.Errorf("create migrator error, %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations error, %w", err)
	}
	return nil
}

// Disable - очищает БД, удаляя записи из таблиц.
// Метод необходим для тестирования, чтобы в процессе удалять тестовые записи.
func (s Store) Disable(ctx context.Context) error {
	_, err := s.conn.ExecContext(ctx, `TRUNCATE TABLE accounts`)
	if err != nil {
		return fmt.Errorf("truncate table accounts error, %w", err)
	}
	return nil
}

// Register - сохраняет в базу данные нового пользователя.
// Повторяющийся email отклоняется уникальным индексом и возвращается как identity.ErrDuplicateAccount.
func (s Store) Register(ctx context.Context, acc identity.Account) error {
	query := `
	INSERT INTO accounts (id, name, email, hash, role, department, title, badge_id, phone, status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`
	stmt, err := s.conn.PrepareContext(ctx, query)
	if err != nil {
		return storageError("prepare context error", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, acc.ID, acc.Name, acc.Email, acc.Hash, acc.Role,
		acc.Department, acc.Title, acc.BadgeID, acc.Phone, acc.Status, acc.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return identity.ErrDuplicateAccount
		}
		return storageError("query execution error", err)
	}
	return nil
}

// AccountByEmail - получаю учетную запись по email без учета регистра.
// Если пользователь не найден, возвращается ok == false без ошибки.
func (s Store) AccountByEmail(ctx context.Context, email string) (identity.Account, bool, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE lower(email) = lower($1)`
	return s.queryAccount(ctx, query, email)
}

// AccountByID - получаю учетную запись по идентификатору.
func (s Store) AccountByID(ctx context.Context, id string) (identity.Account, bool, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return s.queryAccount(ctx, query, id)
}

func (s Store) queryAccount(ctx context.Context, query string, arg string) (identity.Account, bool, error) {
	stmt, err := s.conn.PrepareContext(ctx, query)
	if err != nil {
		return identity.Account{}, false, storageError("prepare context error", err)
	}
	defer stmt.Close()

	acc, err := scanAccount(stmt.QueryRowContext(ctx, arg))
	if errors.Is(err, sql.ErrNoRows) {
		// пользователь не найден
		return identity.Account{}, false, nil
	}
	if err != nil {
		return identity.Account{}, false, storageError("scan row error", err)
	}
	return acc, true, nil
}

// ListAccounts - выгружает учетные записи с фильтрацией по роли и поиском по подстроке.
func (s Store) ListAccounts(ctx context.Context, filter identity.AccountFilter) ([]identity.Account, error) {
	query := `
	SELECT ` + accountColumns + `
	FROM accounts
	WHERE ($1 = '' OR role = $1)
	  AND ($2 = '' OR name ILIKE '%' || $2 || '%'
	               OR email ILIKE '%' || $2 || '%'
	               OR department ILIKE '%' || $2 || '%'
	               OR title ILIKE '%' || $2 || '%'
	               OR badge_id ILIKE '%' || $2 || '%')
	ORDER BY created_at, email
	`
	stmt, err := s.conn.PrepareContext(ctx, query)
	if err != nil {
		return nil, storageError("prepare context error", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, filter.Role, escapeLike(strings.TrimSpace(filter.Search)))
	if err != nil {
		return nil, storageError("query execution error", err)
	}
	defer rows.Close()

	result := make([]identity.Account, 0)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, storageError("scan error", err)
		}
		result = append(result, acc)
	}
	// проверяю на ошибки
	if err := rows.Err(); err != nil {
		return nil, storageError("rows iteration error", err)
	}
	return result, nil
}

// UpdateAccount - заменяет роль и поля профиля учетной записи.
// Пустой статус оставляет текущее значение. Если учетной записи не существует, возвращается ok == false.
func (s Store) UpdateAccount(ctx context.Context, id string, upd identity.AccountUpdate) (identity.Account, bool, error) {
	query := `
	UPDATE accounts
	SET name = $2, role = $3, department = $4, title = $5, badge_id = $6, phone = $7,
	    status = COALESCE(NULLIF($8, ''), status)
	WHERE id = $1
	RETURNING ` + accountColumns

	stmt, err := s.conn.PrepareContext(ctx, query)
	if err != nil {
		return identity.Account{}, false, storageError("prepare context error", err)
	}
	defer stmt.Close()

	acc, err := scanAccount(stmt.QueryRowContext(ctx, id, upd.Name, upd.Role,
		upd.Department, upd.Title, upd.BadgeID, upd.Phone, upd.Status))
	if errors.Is(err, sql.ErrNoRows) {
		// попытка обновить учетную запись, которой не существует
		return identity.Account{}, false, nil
	}
	if err != nil {
		return identity.Account{}, false, storageError("update account error", err)
	}
	return acc, true, nil
}

// DeleteAccount - удаляет учетную запись по идентификатору.
// Если происходит попытка удалить несуществующую запись, возвращается false.
func (s Store) DeleteAccount(ctx context.Context, id string) (bool, error) {
	query := `DELETE FROM accounts WHERE id = $1`

	stmt, err := s.conn.PrepareContext(ctx, query)
	if err != nil {
		return false, storageError("prepare context error", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, id)
	if err != nil {
		return false, storageError("query execution error", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, storageError("rows affected error", err)
	}
	return rowsAffected > 0, nil
}

// rowScanner - общий интерфейс *sql.Row и *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (identity.Account, error) {
	var acc identity.Account
	err := row.Scan(&acc.ID, &acc.Name, &acc.Email, &acc.Hash, &acc.Role,
		&acc.Department, &acc.Title, &acc.BadgeID, &acc.Phone, &acc.Status, &acc.CreatedAt)
	return acc, err
}

// isUniqueViolation - проверяет, что ошибка вызвана нарушением уникального индекса.
// Учитываются ошибки обоих драйверов database/sql: "pgx" (pgconn.PgError) и "postgres" из lib/pq (pq.Error),
// драйвер выбирается параметром запуска сервера.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}

// storageError - оборачивает ошибку СУБД в identity.ErrStorageUnavailable.
func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s, %w", identity.ErrStorageUnavailable, op, err)
}

// escapeLike - экранирует спецсимволы шаблона ILIKE.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
