package websocket

import (
	"github.com/rs/zerolog"
)

// EventLogger is the EventHandler used in production: known events are
// logged at info, anything else at warn. No state changes.
type EventLogger struct {
	logger zerolog.Logger
}

// NewEventLogger creates a new EventLogger
func NewEventLogger(logger zerolog.Logger) *EventLogger {
	return &EventLogger{logger: logger}
}

// HandleEvent logs event
func (l *EventLogger) HandleEvent(event *Event) {
	var msg string
	switch event.Event {
	case EventSessionUpdate:
		msg = "Session update"
	case EventTimetableUpdate:
		msg = "Timetable update"
	case EventResourceUpdate:
		msg = "Resource update"
	default:
		l.logger.Warn().
			Str("clientID", event.ClientID).
			Str("event", event.Event).
			Msg("Unknown event")
		return
	}

	l.logger.Info().
		Str("clientID", event.ClientID).
		Str("event", event.Event).
		RawJSON("data", rawOrNull(event.Data)).
		Msg(msg)
}

func rawOrNull(data []byte) []byte {
	if len(data) == 0 {
		return []byte("null")
	}
	return data
}
