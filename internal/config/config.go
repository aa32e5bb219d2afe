package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config параметры сервера из окружения
type Config struct {
	Addr     string
	DataFile string
}

// Load подхватывает .env, если он есть, и собирает конфигурацию.
// Отсутствующий .env не ошибка: берём переменные процесса.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Addr:     ":" + getEnv("PORT", "3000"),
		DataFile: getEnv("DATA_FILE", "file.json"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
