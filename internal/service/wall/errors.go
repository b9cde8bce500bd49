package wall

import (
	"errors"
)

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrEmptyAuthor  = errors.New("author is empty")
	ErrNotReady     = errors.New("wall is still loading")
	ErrConnectivity = errors.New("remote backend is unreachable")
	ErrBackend      = errors.New("failed to save post to remote backend")
	ErrStorage      = errors.New("failed to save post to local storage")
)
