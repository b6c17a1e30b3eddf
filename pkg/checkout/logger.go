package checkout

import "github.com/rs/zerolog"

// Logger receives the client's leveled log events
type Logger interface {
	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

// NopLogger discards everything. It is the default.
type NopLogger struct{}

func (NopLogger) Debug(string, map[string]any) {}
func (NopLogger) Info(string, map[string]any)  {}
func (NopLogger) Error(string, map[string]any) {}

// ZerologLogger forwards client events to a zerolog.Logger
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger wraps logger, tagging every event with component=checkout
func NewZerologLogger(logger zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{logger: logger.With().Str("component", "checkout").Logger()}
}

func (l *ZerologLogger) Debug(msg string, fields map[string]any) {
	l.logger.Debug().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Info(msg string, fields map[string]any) {
	l.logger.Info().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Error(msg string, fields map[string]any) {
	l.logger.Error().Fields(fields).Msg(msg)
}
