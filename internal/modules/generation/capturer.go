package generation

import (
	"sync"
	"time"
)

// Capturer keeps the generation context of the most recent successful call
// per session. Exactly one context is live at a time; a new success replaces
// it, and failures never write. Registered consumers receive the context by
// value; the capturer itself has no persistence.
type Capturer struct {
	mu        sync.Mutex
	live      map[string]Context
	consumers []func(sessionID string, ctx Context)
}

func NewCapturer() *Capturer {
	return &Capturer{live: make(map[string]Context)}
}

// OnCapture registers a consumer invoked on every successful capture.
// Must be called before the capturer is shared.
func (c *Capturer) OnCapture(fn func(sessionID string, ctx Context)) {
	c.consumers = append(c.consumers, fn)
}

// Capture records the context of a successful generation.
func (c *Capturer) Capture(sessionID string, dto GenerateDTO) Context {
	ctx := Context{
		Topic:      dto.Topic,
		Tone:       dto.Tone,
		Length:     dto.Length,
		Context:    dto.Context,
		PostType:   dto.PostType,
		CapturedAt: time.Now(),
	}

	c.mu.Lock()
	c.live[sessionID] = ctx
	consumers := c.consumers
	c.mu.Unlock()

	for _, fn := range consumers {
		fn(sessionID, ctx)
	}
	return ctx
}

// Last returns the live context for a session, if any.
func (c *Capturer) Last(sessionID string) (Context, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ctx, ok := c.live[sessionID]
	return ctx, ok
}

// Forget drops the live context for a session.
func (c *Capturer) Forget(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.live, sessionID)
}
