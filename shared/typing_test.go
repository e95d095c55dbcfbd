package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTypingActive(t *testing.T) {
	pinged := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	assert.True(t, TypingActive(pinged, pinged))
	assert.True(t, TypingActive(pinged, pinged.Add(6999*time.Millisecond)))
	assert.False(t, TypingActive(pinged, pinged.Add(7*time.Second)), "window is exclusive")
	assert.False(t, TypingActive(pinged, pinged.Add(time.Minute)))
}
