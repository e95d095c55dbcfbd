package shared

import "time"

// TypingWindow is how long a typing ping keeps a participant marked as typing.
const TypingWindow = 7 * time.Second

// TypingActive is the single liveness rule for typing rows. Stale rows are never deleted, they just
// stop counting once the window has passed.
func TypingActive(updatedAt, now time.Time) bool {
	return now.Sub(updatedAt) < TypingWindow
}
