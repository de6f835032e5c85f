// AngelaMos | 2026
// audit.go

// Package audit records security-relevant events as structured JSON lines.
package audit

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/carterperez-dev/lifehacking-api/internal/core"
	"github.com/carterperez-dev/lifehacking-api/internal/metrics"
)

type EventType string

const (
	EventUserCreated     EventType = "user.created"
	EventUserUpdated     EventType = "user.updated"
	EventUserDeleted     EventType = "user.deleted"
	EventUserRoleChanged EventType = "user.role_changed"

	EventFavoriteAdded   EventType = "favorite.added"
	EventFavoriteRemoved EventType = "favorite.removed"
	EventFavoritesMerged EventType = "favorite.merged"

	EventAdminDenied EventType = "authz.admin_denied"
	EventAuthFailure EventType = "auth.failure"
)

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

type Event struct {
	Type          EventType
	Outcome       Outcome
	SubjectID     string
	ActorID       string
	CorrelationID string
	Properties    map[string]any
	Timestamp     time.Time
}

// Logger is implemented by every audit sink.
type Logger interface {
	Log(ctx context.Context, event Event)
}

type actorKey struct{}

// ContextWithActor records the authenticated user id so events logged
// further down the call chain carry it without threading it explicitly.
func ContextWithActor(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorKey{}, actorID)
}

func ActorFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(actorKey{}).(string); ok {
		return id
	}
	return ""
}

type ZerologLogger struct {
	logger zerolog.Logger
	now    func() time.Time
}

func NewZerologLogger(w io.Writer) *ZerologLogger {
	return &ZerologLogger{
		logger: zerolog.New(w).With().
			Timestamp().
			Str("component", "audit").
			Logger(),
		now: time.Now,
	}
}

// New builds the configured sink. "stderr" and "stdout" select a stream,
// anything else is opened as an append-only file.
func New(enabled bool, output string) (Logger, io.Closer, error) {
	if !enabled {
		return Nop{}, io.NopCloser(nil), nil
	}

	switch output {
	case "", "stdout":
		return NewZerologLogger(os.Stdout), io.NopCloser(nil), nil
	case "stderr":
		return NewZerologLogger(os.Stderr), io.NopCloser(nil), nil
	}

	//nolint:gosec // path comes from operator configuration
	f, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, err
	}

	return NewZerologLogger(f), f, nil
}

func (l *ZerologLogger) Log(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = l.now().UTC()
	}
	if event.Outcome == "" {
		event.Outcome = OutcomeSuccess
	}
	if event.CorrelationID == "" {
		event.CorrelationID = core.CorrelationID(ctx)
	}
	if event.ActorID == "" {
		event.ActorID = ActorFromContext(ctx)
	}

	level := zerolog.InfoLevel
	if event.Outcome == OutcomeFailure {
		level = zerolog.WarnLevel
	}

	e := l.logger.WithLevel(level).
		Str("event", string(event.Type)).
		Str("outcome", string(event.Outcome)).
		Time("occurred_at", event.Timestamp)

	if event.SubjectID != "" {
		e = e.Str("subject_id", event.SubjectID)
	}
	if event.ActorID != "" {
		e = e.Str("actor_id", event.ActorID)
	}
	if event.CorrelationID != "" {
		e = e.Str("correlation_id", event.CorrelationID)
	}
	if len(event.Properties) > 0 {
		e = e.Fields(event.Properties)
	}

	e.Send()

	metrics.RecordAuditEvent(string(event.Type), string(event.Outcome))
}

type Nop struct{}

func (Nop) Log(context.Context, Event) {}
