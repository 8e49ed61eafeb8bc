package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

var (
	writer io.Writer  = os.Stdout
	level  slog.Level = slog.Level(1000) // Very high level to disable all logging by default
	logger *slog.Logger
)

func init() {
	rebuild()
}

func rebuild() {
	logger = slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: level,
	}))
}

func Info(msg string, args ...any) {
	logger.Info(format(msg, args))
}

func Debug(msg string, args ...any) {
	logger.Debug(format(msg, args))
}

func Warn(msg string, args ...any) {
	logger.Warn(format(msg, args))
}

func Error(msg string, args ...any) {
	logger.Error(format(msg, args))
}

func SetLevel(l slog.Level) {
	level = l
	rebuild()
}

// SetWriter redirects all log output, e.g. to a MultiWriter spanning
// stdout and the program log file.
func SetWriter(w io.Writer) {
	writer = w
	rebuild()
}

func format(msg string, args []any) string {
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
