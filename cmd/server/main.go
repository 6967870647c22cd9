package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abezemskiy/badgegate/internal/common/identity/tools/token"
	"github.com/abezemskiy/badgegate/internal/repositories/identity"
	"github.com/abezemskiy/badgegate/internal/server/identity/accounts"
	"github.com/abezemskiy/badgegate/internal/server/identity/verifier"
	"github.com/abezemskiy/badgegate/internal/server/logger"
	"github.com/abezemskiy/badgegate/internal/server/metrics"
	"github.com/abezemskiy/badgegate/internal/server/storage"
	"github.com/abezemskiy/badgegate/internal/server/storage/inmemory"
	"github.com/abezemskiy/badgegate/internal/server/storage/pg"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq" // драйвер "postgres"
	"go.uber.org/zap"
)

const (
	shutdownWaitPeriod = 20 * time.Second // для установки в контекст для реализации graceful shutdown
	storageTimeout     = 5 * time.Second  // время ожидания ответа хранилища на один вызов
)

func main() {
	err := parseVariables()
	if err != nil {
		log.Fatalf("failed to set global variables, %v", err)
	}

	// Инициализация логера
	if err := logger.Initialize(logLevel); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
	defer logger.ServerLog.Sync()

	ctx := context.Background()
	stor, closeStorage, err := newStorage(ctx)
	if err != nil {
		logger.ServerLog.Fatal("failed to create storage", zap.String("error", err.Error()))
	}
	defer closeStorage()

	deps, err := buildDependencies(ctx, stor)
	if err != nil {
		logger.ServerLog.Fatal("failed to initialize server", zap.String("error", err.Error()))
	}

	run(ctx, deps)
}

// newStorage - создает хранилище учетных записей. Если адрес СУБД не задан, учетные записи
// хранятся в памяти и теряются при остановке сервера.
func newStorage(ctx context.Context) (storage.IAccountStorage, func(), error) {
	if databaseDsn == "" {
		logger.ServerLog.Warn("database address is not set, accounts are kept in memory")
		return inmemory.NewStore(), func() {}, nil
	}

	if err := pg.Migrate(databaseDsn); err != nil {
		return nil, nil, fmt.Errorf("migrate database error, %w", err)
	}

	conn, err := sql.Open(dbDriver, databaseDsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open database connection error, %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("%w, %w", identity.ErrStorageUnavailable, err)
	}

	closeConn := func() {
		if err := conn.Close(); err != nil {
			logger.ServerLog.Error("failed to close database connection", zap.String("error", err.Error()))
		}
	}
	return pg.NewStore(conn), closeConn, nil
}

// buildDependencies - создает сервисы сервера. Отсутствие секретного ключа - ошибка конфигурации.
func buildDependencies(ctx context.Context, stor storage.IAccountStorage) (dependencies, error) {
	tokens, err := token.NewManager(secretKey, time.Duration(expireToken)*time.Hour)
	if err != nil {
		return dependencies{}, err
	}

	verify, err := verifier.New(stor, storageTimeout, bcryptCost)
	if err != nil {
		return dependencies{}, err
	}

	service := accounts.NewService(stor, accounts.Options{Cost: bcryptCost, Timeout: storageTimeout})
	if adminEmail != "" {
		err := service.EnsureAdmin(ctx, identity.SignUpData{Name: adminName, Email: adminEmail, Password: adminPassword})
		if err != nil {
			return dependencies{}, err
		}
	}

	return dependencies{
		verifier: verify,
		accounts: service,
		tokens:   tokens,
		secure:   production,
	}, nil
}

// функция run запускает сервер и ожидает сигнала остановки
func run(ctx context.Context, deps dependencies) {
	metrics.Init()

	logger.ServerLog.Info("Running badgegate", zap.String("address", netAddr), zap.Bool("production", production))

	// запускаю сам сервис с проверкой отмены контекста для реализации graceful shutdown--------------
	srv := &http.Server{
		Addr:              netAddr,
		Handler:           Router(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}
	// Канал для получения сигнала прерывания
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Горутина для запуска сервера
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ServerLog.Fatal("Error starting server", zap.String("error", err.Error()))
		}
	}()

	// Блокирование до тех пор, пока не поступит сигнал о прерывании
	<-quit
	logger.ServerLog.Info("Shutting down server...", zap.String("address", netAddr))

	ctx, cancel := context.WithTimeout(ctx, shutdownWaitPeriod)
	defer cancel()

	// останавливаю сервер, чтобы он перестал принимать новые запросы
	if err := srv.Shutdown(ctx); err != nil {
		logger.ServerLog.Error("Stopping server error", zap.String("error", err.Error()))
		return
	}

	logger.ServerLog.Info("Shutdown the server gracefully", zap.String("address", netAddr))
}
