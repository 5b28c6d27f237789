package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// SessionID records the session identifier under the key "session_id".
func SessionID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("session_id", id)
}

// ParticipantID records the participant identifier under the key "participant_id".
func ParticipantID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("participant_id", id)
}

// Sport records a sport name under the key "sport".
func Sport(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("sport", name)
}
