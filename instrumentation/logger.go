package instrumentation

import (
	"github.com/rs/zerolog"
)

type Logger interface {
	Debug(activity string, message string)
	Error(activity string, message string)
	Info(activity string, message string)
	Warn(activity string, message string)
}

type NilLogger struct{}

func (*NilLogger) Debug(string, string) {}
func (*NilLogger) Error(string, string) {}
func (*NilLogger) Info(string, string)  {}
func (*NilLogger) Warn(string, string)  {}

// ZerologLogger writes activity scoped messages to a zerolog logger. The activity is attached as
// the "activity" field.
type ZerologLogger struct {
	log zerolog.Logger
}

var _ Logger = (*ZerologLogger)(nil)

func NewZerologLogger(log zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{log: log}
}

func (z *ZerologLogger) Debug(activity string, message string) {
	z.log.Debug().Str("activity", activity).Msg(message)
}

func (z *ZerologLogger) Error(activity string, message string) {
	z.log.Error().Str("activity", activity).Msg(message)
}

func (z *ZerologLogger) Info(activity string, message string) {
	z.log.Info().Str("activity", activity).Msg(message)
}

func (z *ZerologLogger) Warn(activity string, message string) {
	z.log.Warn().Str("activity", activity).Msg(message)
}
