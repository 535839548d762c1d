package config

import (
	"fmt"
	"log"
	"strings"

	"pousada/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// envPrefixes maps ENV to the prefix of its database variables
var envPrefixes = map[string]string{
	"dev":  "DEV_",
	"qc":   "QC_",
	"prod": "PROD_",
}

func getDBConfigByEnv(env string) (string, error) {
	prefix, ok := envPrefixes[strings.ToLower(env)]
	if !ok {
		return "", fmt.Errorf("unknown environment: %q", env)
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s statement_timeout=%d",
		GetEnv(prefix+"DB_HOST"),
		GetEnv(prefix+"DB_USER"),
		GetEnv(prefix+"DB_PASSWORD"),
		GetEnv(prefix+"DB_NAME"),
		GetEnvDefault(prefix+"DB_PORT", "5432"),
		GetEnvDefault("DB_SSLMODE", "require"),
		GetEnvDefault("DB_TIMEZONE", "UTC"),
		GetEnvInt("DB_STATEMENT_TIMEOUT_MS", 5000),
	)
	return dsn, nil
}

// GormConfig is shared by the server and the tests so duplicate keys
// surface as gorm.ErrDuplicatedKey everywhere
func GormConfig() *gorm.Config {
	level := gormlogger.Warn
	if GetEnv("LOG_LEVEL") == "debug" {
		level = gormlogger.Info
	}
	return &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(level),
	}
}

func ConnectDB() error {
	dsn, err := getDBConfigByEnv(GetEnvDefault("ENV", "dev"))
	if err != nil {
		return err
	}

	DB, err = gorm.Open(postgres.Open(dsn), GormConfig())
	if err != nil {
		return fmt.Errorf("fail to connect to db: %w", err)
	}
	if err := Migrate(DB); err != nil {
		return err
	}

	log.Println("Successfully connected to db")
	return nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
