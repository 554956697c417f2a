package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/datazip-inc/tap-mongodb/constants"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger zerolog.Logger

func init() {
	// usable before Init; stdout is reserved for protocol messages
	logger = zerolog.New(console()).With().Timestamp().Logger()
}

func console() zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
}

// Init attaches a rotating file sink under the config folder alongside the
// stderr console writer
func Init() {
	logFolder := filepath.Join(viper.GetString(constants.ConfigFolder), "logs")

	fileSink := &lumberjack.Logger{
		Filename:   filepath.Join(logFolder, fmt.Sprintf("sync_%d.log", time.Now().Unix())),
		MaxSize:    100, // MB
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}

	logger = zerolog.New(io.MultiWriter(console(), fileSink)).With().Timestamp().Logger()
}

func Debugf(format string, v ...any) {
	logger.Debug().Msgf(format, v...)
}

func Infof(format string, v ...any) {
	logger.Info().Msgf(format, v...)
}

func Warnf(format string, v ...any) {
	logger.Warn().Msgf(format, v...)
}

func Errorf(format string, v ...any) {
	logger.Error().Msgf(format, v...)
}

func Fatalf(format string, v ...any) {
	logger.Fatal().Msgf(format, v...)
}

func Debug(v ...any) {
	logger.Debug().Msg(fmt.Sprint(v...))
}

func Info(v ...any) {
	logger.Info().Msg(fmt.Sprint(v...))
}

func Warn(v ...any) {
	logger.Warn().Msg(fmt.Sprint(v...))
}

func Error(v ...any) {
	logger.Error().Msg(fmt.Sprint(v...))
}

func Fatal(v ...any) {
	logger.Fatal().Msg(fmt.Sprint(v...))
}
