package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthor(t *testing.T) {
	assert.NoError(t, Author("Greg"))
	assert.Error(t, Author(""))
	assert.Error(t, Author("   "))
	assert.NoError(t, Author(strings.Repeat("ä", MaxAuthorLength)))
	assert.Error(t, Author(strings.Repeat("a", MaxAuthorLength+1)))
}

func TestMessage(t *testing.T) {
	assert.NoError(t, Message("hello"))
	assert.Error(t, Message(""))
	assert.Error(t, Message(" \n\t "))
	// limit counts characters, not bytes
	assert.NoError(t, Message(strings.Repeat("🔥", MaxMessageLength)))
	assert.NoError(t, Message("  "+strings.Repeat("a", MaxMessageLength)+"  "))
	assert.Error(t, Message(strings.Repeat("a", MaxMessageLength+1)))
}
