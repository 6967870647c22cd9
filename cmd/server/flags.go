package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/abezemskiy/badgegate/internal/common/identity/tools/hasher"
	"github.com/abezemskiy/badgegate/internal/repositories/identity"
	"github.com/abezemskiy/badgegate/internal/server/config"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultAddress     = ":8080"
	defaultLogLevel    = "info"
	defaultExpireToken = 1 // часы
	defaultDBDriver    = "pgx"
	envFileName        = ".env"
)

var (
	netAddr       string // адрес запуска сервиса
	databaseDsn   string // адрес базы данных, пустой адрес - хранение учетных записей в памяти
	dbDriver      string // драйвер database/sql: pgx или postgres (lib/pq)
	logLevel      string // уровень логирования
	configFile    string // путь к файлу конфигурации
	secretKey     string // секретный ключ для подписи JWT
	expireToken   int    // время действия JWT в часах
	production    bool   // production окружение, cookie передается только по HTTPS
	bcryptCost    int    // стоимость bcrypt
	adminEmail    string // email администратора, создаваемого при запуске
	adminPassword string // пароль администратора, создаваемого при запуске
	adminName     string // имя администратора, создаваемого при запуске
)

// parseVariables - функция для установки конфигурационных параметров приложения.
// Конфигурирование приложения с приоритетом в порядке убывания: значения флагов, значения из файла,
// значения переменных окружения, значения из файла .env.
func parseVariables() error {
	parseFlags()
	if err := parseConfigFile(); err != nil {
		return err
	}
	loadEnvFile(envFileName)
	parseEnvironment()
	setDefaults()

	// Проверяю корректность установки глобальных переменных
	if err := checkVariables(); err != nil {
		return fmt.Errorf("failed to set global variable, %w", err)
	}
	return nil
}

// parseFlags - функция для определения параметров конфигурации из флагов.
func parseFlags() {
	flag.StringVar(&netAddr, "a", "", "address and port to run server")
	flag.StringVar(&databaseDsn, "d", "", "database connection address") // по умолчанию адрес не задан
	flag.StringVar(&dbDriver, "db-driver", "", "database/sql driver: pgx or postgres")
	flag.StringVar(&logLevel, "l", "", "log level")
	flag.StringVar(&configFile, "c", "", "name of configuration file")
	flag.StringVar(&secretKey, "secret-key", "", "secret key for signing JWT")
	flag.IntVar(&expireToken, "expire-token", 0, "JWT lifetime in hours")
	flag.BoolVar(&production, "production", false, "production mode, token cookie is sent over HTTPS only")
	flag.IntVar(&bcryptCost, "bcrypt-cost", 0, "bcrypt cost for password hashing")
	flag.StringVar(&adminEmail, "admin-email", "", "email of administrator created at startup")
	flag.StringVar(&adminPassword, "admin-password", "", "password of administrator created at startup")
	flag.StringVar(&adminName, "admin-name", "", "name of administrator created at startup")

	// Вызов flag.Parse() для парсинга аргументов
	flag.Parse()
}

// parseConfigFile - функция для переопределения параметров конфигурации из файла конфигурации.
func parseConfigFile() error {
	// если не указан файл конфигурации, то оставляю параметры запуска без изменения
	if configFile == "" {
		return nil
	}
	configs, err := config.ParseConfigFile(configFile)
	if err != nil {
		return fmt.Errorf("%w: %w", identity.ErrConfiguration, err)
	}

	// обновляю параметры запуска если они не определены флагами
	if netAddr == "" {
		netAddr = configs.Address
	}
	if logLevel == "" {
		logLevel = configs.LogLevel
	}
	if databaseDsn == "" {
		databaseDsn = configs.DatabaseDSN
	}
	if dbDriver == "" {
		dbDriver = configs.DatabaseDriver
	}
	if secretKey == "" {
		secretKey = configs.SecretKey
	}
	if expireToken == 0 {
		expireToken = configs.ExpireToken
	}
	if !production {
		production = configs.Production
	}
	if bcryptCost == 0 {
		bcryptCost = configs.BcryptCost
	}
	if adminEmail == "" {
		adminEmail = configs.AdminEmail
	}
	if adminPassword == "" {
		adminPassword = configs.AdminPassword
	}
	if adminName == "" {
		adminName = configs.AdminName
	}
	return nil
}

// loadEnvFile - загружает переменные окружения из файла. Уже установленные переменные не переопределяются.
func loadEnvFile(name string) {
	if err := godotenv.Load(name); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to load %s file: %v", name, err)
	}
}

// parseEnvironment - функция для переопределения конфигурации из переменных окружения.
// Переопределяет конфигурацию, если значения не установлены флагами или файлом конфигурации.
func parseEnvironment() {
	if netAddr == "" {
		netAddr = os.Getenv("BADGEGATE_SERVER_ADDRESS")
	}
	if databaseDsn == "" {
		databaseDsn = os.Getenv("BADGEGATE_SERVER_DATABASE_URL")
	}
	if dbDriver == "" {
		dbDriver = os.Getenv("BADGEGATE_SERVER_DATABASE_DRIVER")
	}
	if logLevel == "" {
		logLevel = os.Getenv("BADGEGATE_SERVER_LOG_LEVEL")
	}
	if secretKey == "" {
		secretKey = os.Getenv("BADGEGATE_SERVER_SECRET_KEY")
	}
	if expireToken == 0 {
		expireToken = envInt("BADGEGATE_SERVER_EXPIRE_TOKEN")
	}
	if !production {
		production, _ = strconv.ParseBool(os.Getenv("BADGEGATE_SERVER_PRODUCTION"))
	}
	if bcryptCost == 0 {
		bcryptCost = envInt("BADGEGATE_SERVER_BCRYPT_COST")
	}
	if adminEmail == "" {
		adminEmail = os.Getenv("BADGEGATE_SERVER_ADMIN_EMAIL")
	}
	if adminPassword == "" {
		adminPassword = os.Getenv("BADGEGATE_SERVER_ADMIN_PASSWORD")
	}
	if adminName == "" {
		adminName = os.Getenv("BADGEGATE_SERVER_ADMIN_NAME")
	}
}

func envInt(name string) int {
	value, err := strconv.Atoi(os.Getenv(name))
	if err != nil {
		return 0
	}
	return value
}

// setDefaults - значения по умолчанию для параметров, которые не заданы ни одним способом.
// Секретный ключ значения по умолчанию не имеет.
func setDefaults() {
	if netAddr == "" {
		netAddr = defaultAddress
	}
	if logLevel == "" {
		logLevel = defaultLogLevel
	}
	if dbDriver == "" {
		dbDriver = defaultDBDriver
	}
	if expireToken == 0 {
		expireToken = defaultExpireToken
	}
	if bcryptCost == 0 {
		bcryptCost = hasher.DefaultCost
	}
	if adminName == "" {
		adminName = "Administrator"
	}
}

// checkVariables - функция для проверки корректности установки глобальных переменных.
func checkVariables() error {
	if secretKey == "" {
		return fmt.Errorf("%w: secret key must be set", identity.ErrConfiguration)
	}
	if dbDriver != "pgx" && dbDriver != "postgres" {
		return fmt.Errorf("%w: unknown database driver %q", identity.ErrConfiguration, dbDriver)
	}
	if expireToken < 0 {
		return fmt.Errorf("%w: expire token must be positive", identity.ErrConfiguration)
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: bcrypt cost must be between %d and %d", identity.ErrConfiguration, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if (adminEmail == "") != (adminPassword == "") {
		return fmt.Errorf("%w: administrator email and password must be set together", identity.ErrConfiguration)
	}
	return nil
}
