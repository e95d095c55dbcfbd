package hooks

import (
	"sync"

	"forum-server/db"
	"forum-server/shared"
)

const (
	WillCreateThread = "will_create_thread"
	WillCreatePost   = "will_create_post"
	WillSendMessage  = "will_send_message"
)

type HookParams struct {
	User *db.User

	SubsectionId   int64
	ThreadId       int64
	ConversationId int64
}

type Hook func(params HookParams) *shared.ApiError

var (
	mu    sync.RWMutex
	hooks = make(map[string]Hook)
)

func RegisterHook(name string, hook Hook) {
	mu.Lock()
	defer mu.Unlock()
	hooks[name] = hook
}

func ExecHook(name string, params HookParams) *shared.ApiError {
	mu.RLock()
	hook, ok := hooks[name]
	mu.RUnlock()

	if !ok {
		return nil
	}
	return hook(params)
}

// Reset removes every registered hook.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	hooks = make(map[string]Hook)
}
