package storage

import (
	"errors"
)

var (
	ErrConfigurationMissing = errors.New("backend configuration is missing")
	ErrBackend              = errors.New("backend request failed")
	ErrUnavailable          = errors.New("storage is unavailable")
	ErrClosed               = errors.New("failed to close database")
)

// ChangesChannel is the notification channel fired by wall_posts trigger
const ChangesChannel = "wall_posts_changes"
