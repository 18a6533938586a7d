package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger. Console output is meant for
// local runs; JSON output for anything that ships logs.
func Init(serviceName string, debug, jsonOutput bool) {
	InitWithWriter(os.Stdout, serviceName, debug, jsonOutput)
}

// InitWithWriter is Init with an explicit destination.
func InitWithWriter(out io.Writer, serviceName string, debug, jsonOutput bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.TimestampFieldName = "timestamp"
	zerolog.MessageFieldName = "message"

	if !jsonOutput {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			FormatLevel: func(i interface{}) string {
				return fmt.Sprintf("| %-6s|", i)
			},
			FormatMessage: func(i interface{}) string {
				return fmt.Sprintf("| %s", i)
			},
			FormatFieldName: func(i interface{}) string {
				return fmt.Sprintf("%s:", i)
			},
			FormatFieldValue: func(i interface{}) string {
				return fmt.Sprintf("%s", i)
			},
		}
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	log.Logger = zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()

	log.Debug().Msg("Logger initialized")
}

// With returns a child logger carrying one extra string field
func With(key, value string) zerolog.Logger {
	return log.With().Str(key, value).Logger()
}

// ForLottery returns a child logger tagged with the lottery id
func ForLottery(lotteryID string) zerolog.Logger {
	return log.With().Str("lottery_id", lotteryID).Logger()
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

// Fatal logs and exits
func Fatal() *zerolog.Event {
	return log.Fatal()
}
