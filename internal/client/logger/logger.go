package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ClientLog - логер клиента. Меняется только функциями Initialize и Close.
// Пока логер не инициализирован, сообщения отбрасываются.
var ClientLog *zap.Logger = zap.NewNop()

// output - открытый файл логов текущего сеанса.
var output *os.File

// Initialize - настраивает ClientLog.
// Терминал занят TUI, поэтому логи пишутся только в файл. Без logFile сообщения отбрасываются,
// но уровень все равно проверяется. Файл пересоздается при каждом запуске и доступен только владельцу:
// в логах сеанса есть email пользователей.
func Initialize(level, logFile string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level error, %w", err)
	}
	if logFile == "" {
		return nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("open log file error, %w", err)
	}
	// права существующего файла OpenFile не меняет
	if err := f.Chmod(0o600); err != nil {
		f.Close()
		return fmt.Errorf("restrict log file error, %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	sink := zapcore.Lock(f)
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), sink, lvl)

	if err := Close(); err != nil {
		f.Close()
		return err
	}
	output = f
	ClientLog = zap.New(core, zap.ErrorOutput(sink), zap.AddCaller()).With(zap.String("role", "client"))
	return nil
}

// Close - сбрасывает буфер и закрывает файл логов. ClientLog снова отбрасывает сообщения.
func Close() error {
	if output == nil {
		return nil
	}
	_ = ClientLog.Sync()
	ClientLog = zap.NewNop()

	err := output.Close()
	output = nil
	if err != nil {
		return fmt.Errorf("close log file error, %w", err)
	}
	return nil
}
