package hooks

import (
	"context"
	"fmt"
	"log"
	"time"

	"forum-server/db"
	"forum-server/shared"
)

const rateLimitWindow = time.Hour

// Counter returns how many items the user created since the given time.
type Counter func(ctx context.Context, userId int64, since time.Time) (int, error)

// RateLimit builds a hook that rejects the write once the user has created limit items within the
// last hour. A non-positive limit disables the check.
func RateLimit(what string, limit int, count Counter) Hook {
	return func(params HookParams) *shared.ApiError {
		if limit <= 0 || params.User == nil {
			return nil
		}

		n, err := count(context.Background(), params.User.Id, time.Now().Add(-rateLimitWindow))
		if err != nil {
			log.Printf("error checking %s rate limit: %v", what, err)
			// the store is down; let the write itself fail
			return nil
		}

		if n >= limit {
			return shared.RateLimitedError(fmt.Sprintf("You can create at most %d %s per hour", limit, what))
		}

		return nil
	}
}

type Limits struct {
	ThreadsPerHour  int
	PostsPerHour    int
	MessagesPerHour int
}

// RegisterRateLimits installs the per-user hourly limits on thread creation, replies and private messages.
func RegisterRateLimits(limits Limits) {
	RegisterHook(WillCreateThread, RateLimit("threads", limits.ThreadsPerHour, db.CountThreadsSince))
	RegisterHook(WillCreatePost, RateLimit("posts", limits.PostsPerHour, db.CountPostsSince))
	RegisterHook(WillSendMessage, RateLimit("messages", limits.MessagesPerHour, db.CountMessagesSince))
}
