package database

import (
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Connect abre la conexión Postgres. TranslateError permite detectar
// violaciones de unicidad como gorm.ErrDuplicatedKey en cualquier driver.
func Connect() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_USER", "inventario"),
			getEnv("DB_PASSWORD", ""),
			getEnv("DB_NAME", "inventario_activos"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_SSLMODE", "disable"),
		)
	}

	logLevel := logger.Warn
	if getEnv("DB_DEBUG", "false") == "true" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("no se pudo conectar a la base de datos: %w", err)
	}

	log.Println("Conexión a PostgreSQL establecida")
	return db, nil
}

// ConnectRedis abre el cliente Redis. Devuelve nil si REDIS_URL no está
// configurada; los consumidores toleran el cliente nulo.
func ConnectRedis() *redis.Client {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		log.Println("REDIS_URL no configurada, cache y rate limiting deshabilitados")
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("REDIS_URL inválida: %v", err)
		return nil
	}

	return redis.NewClient(opts)
}
