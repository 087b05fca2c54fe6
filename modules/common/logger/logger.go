package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger - zerolog 별칭
type Logger = zerolog.Logger

// New - 서비스 로거 생성 (개발 모드는 콘솔 출력)
func New(appEnv, level string) Logger {
	return NewWithWriter(os.Stdout, appEnv, level)
}

// NewWithWriter - 출력 대상 지정 버전
func NewWithWriter(w io.Writer, appEnv, level string) Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
		if appEnv == "development" {
			lvl = zerolog.DebugLevel
		}
	}

	logger := zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	if appEnv == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
	}
	return logger
}

// Nop - 테스트용 무음 로거
func Nop() Logger {
	return zerolog.Nop()
}
