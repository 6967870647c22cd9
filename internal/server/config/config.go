package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// Configs представляет структуру конфигурации.
type Configs struct {
	Address        string `json:"address"`         // аналог переменной окружения BADGEGATE_SERVER_ADDRESS или флага -a
	LogLevel       string `json:"log_level"`       // аналог переменной окружения BADGEGATE_SERVER_LOG_LEVEL или флага -l
	DatabaseDSN    string `json:"database_dsn"`    // аналог переменной окружения BADGEGATE_SERVER_DATABASE_URL или флага -d
	DatabaseDriver string `json:"database_driver"` // аналог переменной окружения BADGEGATE_SERVER_DATABASE_DRIVER или флага -db-driver
	SecretKey      string `json:"secret_key"`      // аналог переменной окружения BADGEGATE_SERVER_SECRET_KEY или флага -secret-key
	ExpireToken    int    `json:"expire_token"`    // аналог переменной окружения BADGEGATE_SERVER_EXPIRE_TOKEN или флага -expire-token
	Production     bool   `json:"production"`      // аналог переменной окружения BADGEGATE_SERVER_PRODUCTION или флага -production
	BcryptCost     int    `json:"bcrypt_cost"`     // аналог переменной окружения BADGEGATE_SERVER_BCRYPT_COST или флага -bcrypt-cost
	AdminEmail     string `json:"admin_email"`     // аналог переменной окружения BADGEGATE_SERVER_ADMIN_EMAIL или флага -admin-email
	AdminPassword  string `json:"admin_password"`  // аналог переменной окружения BADGEGATE_SERVER_ADMIN_PASSWORD или флага -admin-password
	AdminName      string `json:"admin_name"`      // аналог переменной окружения BADGEGATE_SERVER_ADMIN_NAME или флага -admin-name
}

// ParseConfigFile - функция для переопределения параметров конфигурации из файла конфигурации.
func ParseConfigFile(configFileName string) (Configs, error) {
	var configs Configs
	f, err := os.Open(configFileName)
	if err != nil {
		return Configs{}, fmt.Errorf("open cofiguration file error: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(bufio.NewReader(f))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&configs); err != nil {
		return Configs{}, fmt.Errorf("parse cofiguration file error: %w", err)
	}

	return configs, nil
}
