package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log - глобальный логгер сервера арены.
// До вызова Init пишет в stderr с настройками logrus по умолчанию,
// поэтому пакеты (и тесты) могут логировать без явной инициализации.
var Log = logrus.New()

// Init настраивает глобальный логгер из окружения.
// Вызывается один раз в main.go (и в TestMain пакетов).
func Init() {
	// 1. Уровень: LOG_LEVEL, по умолчанию "info".
	level, err := logrus.ParseLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// 2. Формат: "json" для сбора логов, иначе текст для разработки.
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}

// Component возвращает запись лога с полем component.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
