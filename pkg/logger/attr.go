package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the authenticated user's identifier under "user_id".
// An empty id yields an empty Attr.
func UserID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("user_id", id)
}

// RequestID records the request identifier under "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// AuthEvent records a session-change event name under "auth_event".
func AuthEvent(name string) slog.Attr {
	return slog.String("auth_event", name)
}

// Collection records a backend collection (table) name under "collection".
func Collection(name string) slog.Attr {
	return slog.String("collection", name)
}

// Count records a cardinality under "count".
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}

// Duration records a duration under "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}
