package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MaxAuthorLength  = 64
	MaxMessageLength = 280
)

func Author(author string) error {
	author = strings.TrimSpace(author)
	if len(author) == 0 {
		return fmt.Errorf("%s", "author can't be empty")
	}
	if utf8.RuneCountInString(author) > MaxAuthorLength {
		return fmt.Errorf("author can't be longer than %d characters", MaxAuthorLength)
	}

	return nil
}

func Message(message string) error {
	message = strings.TrimSpace(message)
	if len(message) == 0 {
		return fmt.Errorf("%s", "message can't be empty")
	}
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return fmt.Errorf("message can't be longer than %d characters", MaxMessageLength)
	}

	return nil
}
