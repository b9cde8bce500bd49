package sl

import (
	"log/slog"
)

// Err returns slog attribute for error
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{Key: "error", Value: slog.StringValue("<nil>")}
	}

	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Discard returns logger which writes nowhere. Used in tests
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
