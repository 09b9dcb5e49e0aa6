package database

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/event"
)

// CommandLogger logs driver commands, the MongoDB counterpart of a SQL
// query tracer. It is only installed in the local environment because it
// is very noisy.
type CommandLogger struct {
	log           *zerolog.Logger
	slowThreshold time.Duration
}

// NewCommandLogger creates a CommandLogger. Commands slower than
// slowThreshold are logged at warn level; zero disables the distinction.
func NewCommandLogger(logger *zerolog.Logger, slowThreshold time.Duration) *CommandLogger {
	return &CommandLogger{log: logger, slowThreshold: slowThreshold}
}

// Monitor returns the driver hook.
func (cl *CommandLogger) Monitor() *event.CommandMonitor {
	return &event.CommandMonitor{
		Started:   cl.started,
		Succeeded: cl.succeeded,
		Failed:    cl.failed,
	}
}

func (cl *CommandLogger) started(_ context.Context, e *event.CommandStartedEvent) {
	cl.log.Debug().
		Str("command", e.CommandName).
		Str("database", e.DatabaseName).
		Int64("request_id", e.RequestID).
		Str("body", e.Command.String()).
		Msg("mongo command started")
}

func (cl *CommandLogger) succeeded(_ context.Context, e *event.CommandSucceededEvent) {
	entry := cl.log.Debug()
	if cl.slowThreshold > 0 && e.Duration >= cl.slowThreshold {
		entry = cl.log.Warn().Bool("slow", true)
	}

	entry.
		Str("command", e.CommandName).
		Int64("request_id", e.RequestID).
		Dur("duration", e.Duration).
		Msg("mongo command succeeded")
}

func (cl *CommandLogger) failed(_ context.Context, e *event.CommandFailedEvent) {
	cl.log.Error().
		Err(e.Failure).
		Str("command", e.CommandName).
		Int64("request_id", e.RequestID).
		Dur("duration", e.Duration).
		Msg("mongo command failed")
}
