package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config содержит настройки приложения
type Config struct {
	HTTPAddr          string        // Адрес HTTP-сервера
	LogLevel          string        // Уровень логирования
	ThinkImmoURL      string        // Базовый URL источника объявлений
	ThinkImmoPageSize int           // Размер страницы выборки объявлений
	GeminiURL         string        // Базовый URL языковой модели
	GeminiModel       string        // Имя модели советника
	GeminiAPIKey      string        // Ключ API советника
	AdvisorEnabled    bool          // Включен ли советник
	RedisAddr         string        // Адрес Redis
	RedisPassword     string        // Пароль Redis
	RedisDB           int           // Номер базы Redis
	SnapshotTTL       time.Duration // Время жизни снимка объявлений
	RefreshCronSpec   string        // Расписание фонового обновления снимков
}

// LoadConfig загружает конфигурацию из .env файла
func LoadConfig() (*Config, error) {
	// Загружаем переменные окружения из .env файла
	if err := godotenv.Load(); err != nil {
		logrus.Warn("Файл .env не найден")
	}

	// Парсим время жизни снимка объявлений
	ttl, err := time.ParseDuration(os.Getenv("SNAPSHOT_TTL"))
	if err != nil {
		ttl = 15 * time.Minute // По умолчанию 15 минут
	}

	// Создаем объект конфигурации
	config := &Config{
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		ThinkImmoURL:      getEnv("THINKIMMO_URL", "https://api.thinkimmo.com/immo"),
		ThinkImmoPageSize: getEnvInt("THINKIMMO_PAGE_SIZE", 400),
		GeminiURL:         getEnv("GEMINI_URL", "https://generativelanguage.googleapis.com"),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		AdvisorEnabled:    getEnvBool("ADVISOR_ENABLED", true),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		SnapshotTTL:       ttl,
		RefreshCronSpec:   getEnv("REFRESH_CRON", "@every 10m"),
	}

	// Советник не работает без ключа API
	if config.GeminiAPIKey == "" {
		config.AdvisorEnabled = false
	}

	return config, nil
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt получает целочисленную переменную окружения
func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvBool получает булеву переменную окружения
func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
