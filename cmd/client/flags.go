package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/abezemskiy/badgegate/internal/repositories/identity"
	"github.com/abezemskiy/badgegate/internal/server/config"
)

var (
	serverAddr string // адрес сервера badgegate
	logLevel   string // уровень логирования
	logFile    string // файл для вывода логов, TUI занимает терминал
	configFile string // путь к файлу конфигурации
)

// parseVariables - функция для установки конфигурационных параметров клиента.
// Конфигурирование приложения с приоритетом в порядке убывания: значения флагов, значения из файла, значения переменных окружения.
func parseVariables() error {
	parseFlags()
	if err := parseConfigFile(); err != nil {
		return err
	}
	parseEnvironment()
	setDefaults()

	return checkVariables()
}

// parseFlags - функция для определения параметров конфигурации из флагов.
func parseFlags() {
	flag.StringVar(&serverAddr, "a", "", "address and port of badgegate server")
	flag.StringVar(&logLevel, "l", "", "log level")
	flag.StringVar(&logFile, "f", "", "log file")
	flag.StringVar(&configFile, "c", "", "name of configuration file")

	flag.Parse()
}

// parseConfigFile - функция для переопределения параметров конфигурации из файла конфигурации.
func parseConfigFile() error {
	if configFile == "" {
		return nil
	}
	configs, err := config.ParseConfigFile(configFile)
	if err != nil {
		return fmt.Errorf("%w, %w", identity.ErrConfiguration, err)
	}

	if serverAddr == "" {
		serverAddr = configs.Address
	}
	if logLevel == "" {
		logLevel = configs.LogLevel
	}
	return nil
}

// parseEnvironment - функция для переопределения конфигурации из переменных окружения.
func parseEnvironment() {
	if serverAddr == "" {
		serverAddr = os.Getenv("BADGEGATE_CLIENT_SERVER_ADDRESS")
	}
	if logLevel == "" {
		logLevel = os.Getenv("BADGEGATE_CLIENT_LOG_LEVEL")
	}
	if logFile == "" {
		logFile = os.Getenv("BADGEGATE_CLIENT_LOG_FILE")
	}
}

func setDefaults() {
	if serverAddr == "" {
		serverAddr = "localhost:8080"
	}
	if logLevel == "" {
		logLevel = "info"
	}
	if logFile == "" {
		logFile = "client.log"
	}
}

// checkVariables - функция для проверки корректности установки глобальных переменных.
func checkVariables() error {
	if strings.TrimSpace(serverAddr) == "" {
		return fmt.Errorf("%w, server address must be set", identity.ErrConfiguration)
	}
	return nil
}

// serverURL - базовый адрес api. Схема http добавляется, если она не указана.
func serverURL() string {
	if strings.HasPrefix(serverAddr, "http://") || strings.HasPrefix(serverAddr, "https://") {
		return strings.TrimRight(serverAddr, "/")
	}
	return "http://" + strings.TrimRight(serverAddr, "/")
}
