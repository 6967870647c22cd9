package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abezemskiy/badgegate/internal/client/handlers"
	clientIdent "github.com/abezemskiy/badgegate/internal/client/identity"
	"github.com/abezemskiy/badgegate/internal/client/logger"
	"github.com/abezemskiy/badgegate/internal/client/storage/info"
	"github.com/abezemskiy/badgegate/internal/client/tui"
	"github.com/abezemskiy/badgegate/internal/client/tui/app"
	"github.com/abezemskiy/badgegate/internal/client/tui/dashboard"
	"github.com/abezemskiy/badgegate/internal/client/tui/home"
	"github.com/abezemskiy/badgegate/internal/client/tui/ident/authorize"
	"github.com/abezemskiy/badgegate/internal/client/tui/ident/register"
	"github.com/abezemskiy/badgegate/internal/client/tui/users"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// requestTimeout - ограничение времени одного запроса к серверу.
const requestTimeout = 10 * time.Second

func main() {
	if err := parseVariables(); err != nil {
		log.Fatalf("failed to set global variables, %v", err)
	}
	if err := logger.Initialize(logLevel, logFile); err != nil {
		log.Fatalf("Error starting client: %v", err)
	}
	defer func() {
		if err := logger.Close(); err != nil {
			log.Printf("failed to close log file, %v", err)
		}
	}()

	// resty клиент хранит cookie сессии в собственном cookie jar
	client := resty.New().
		SetBaseURL(serverURL()).
		SetTimeout(requestTimeout)

	run(context.Background(), info.NewSessionInfo(), client)
}

func run(ctx context.Context, info clientIdent.IUserInfoStorage, client *resty.Client) {
	ctx, cancelCtx := context.WithCancel(ctx)
	defer cancelCtx()

	tuiApp := createTUI(ctx, info, client)

	done := make(chan error, 1)
	go func() {
		done <- tuiApp.Run()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-done:
		if err != nil {
			logger.ClientLog.Error("tui stopped with error", zap.String("error", err.Error()))
		}
	case <-quit:
		logger.ClientLog.Info("Shutting down client...")
		tuiApp.Stop()
		<-done
	}

	// сессия на сервере завершается, если пользователь не вышел сам
	if _, ok := info.Get(); ok {
		logoutCtx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if _, err := handlers.Logout(logoutCtx, client); err != nil {
			logger.ClientLog.Error("failed to logout on shutdown", zap.String("error", err.Error()))
		}
		info.Clear()
	}
	logger.ClientLog.Info("Shutdown the client gracefully")
}

func createTUI(ctx context.Context, info clientIdent.IUserInfoStorage, client *resty.Client) *app.App {
	section := users.New(ctx, client, info)

	prims := []app.Primitives{
		{Name: tui.Home, Prim: home.Page},
		{Name: tui.Register, Prim: register.Page(ctx, client)},
		{Name: tui.Login, Prim: authorize.LoginPage(ctx, client, info)},
		{Name: tui.Dashboard, Prim: dashboard.Page(ctx, client, info, section.Open)},
		{Name: tui.Users, Prim: section.ListPage},
		{Name: tui.EditUser, Prim: section.EditPage},
		{Name: tui.NewUser, Prim: section.NewPage},
	}
	return app.NewApp(prims)
}
