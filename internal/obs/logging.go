// Package obs содержит утилиты наблюдаемости: логирование.
package obs

import (
	"log/slog"
	"os"
)

// Logger глобальный структурный логгер сервиса
var Logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

// InitLogger переинициализирует Logger с заданным уровнем
func InitLogger(level slog.Level) {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	Logger = slog.New(h)
}
