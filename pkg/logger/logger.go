// Package logger configura el logging estructurado de la aplicación sobre
// zerolog: salida de consola legible en desarrollo, JSON en producción.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Config opciones del logger.
type Config struct {
	Env   string // development activa la salida de consola
	Level string // trace, debug, info, warn, error; otro valor cae en info
}

// Logger es zerolog embebido: expone Trace/Debug/Info/Warn/Error/Fatal y With
// directamente.
type Logger struct {
	zerolog.Logger
}

// New construye el logger raíz y lo instala también como logger global de
// zerolog para las librerías que escriban por esa vía.
func New(cfg Config) *Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var out io.Writer = os.Stdout
	if cfg.Env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	zl := zerolog.New(out).Level(level).With().Timestamp().Logger()
	zlog.Logger = zl

	return &Logger{Logger: zl}
}
