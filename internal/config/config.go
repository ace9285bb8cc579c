package config

import (
	"os"

	pkgconfig "github.com/mindstore/backoffice/pkg/config"
)

type Config struct {
	ServiceName string

	ServerPort int

	DatabaseURL string

	JWTAccessSecret []byte

	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string

	LogLevel    string
	MaxPageSize int
}

func Load() Config {
	return Config{
		ServiceName: pkgconfig.EnvDefault("SERVICE_NAME", "admin"),

		ServerPort: pkgconfig.EnvIntDefault("SERVER_PORT", 8080),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTAccessSecret: []byte(os.Getenv("JWT_SECRET")),

		KafkaBrokers: pkgconfig.CSV(os.Getenv("KAFKA_BROKERS")),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),

		LogLevel:    pkgconfig.EnvDefault("LOG_LEVEL", "info"),
		MaxPageSize: pkgconfig.EnvIntDefault("MAX_PAGE_SIZE", 100),
	}
}
