package tui

import (
	"time"

	"github.com/colonyops/freigabe/internal/core/notify"
)

const (
	defaultToastTTL   = 3 * time.Second
	defaultErrorTTL   = 5 * time.Second
	defaultMaxToasts  = 5
	toastTickInterval = 100 * time.Millisecond
	toastWidth        = 46
)

type toast struct {
	notification notify.Notification
	remaining    time.Duration
}

// ToastController manages the lifecycle of active toast notifications.
// It handles push, eviction, TTL countdown, and dismissal.
type ToastController struct {
	toasts   []toast
	ttl      time.Duration
	errorTTL time.Duration
	max      int
}

// NewToastController creates a controller. Zero durations fall back to the
// defaults; errors stay on screen longer than other levels.
func NewToastController(ttl, errorTTL time.Duration) *ToastController {
	if ttl <= 0 {
		ttl = defaultToastTTL
	}
	if errorTTL <= 0 {
		errorTTL = defaultErrorTTL
	}
	return &ToastController{ttl: ttl, errorTTL: errorTTL, max: defaultMaxToasts}
}

// Push adds a notification to the toast stack. If the stack exceeds the
// limit, the oldest toast is evicted.
func (c *ToastController) Push(n notify.Notification) {
	ttl := c.ttl
	if n.Level == notify.LevelError {
		ttl = c.errorTTL
	}

	c.toasts = append(c.toasts, toast{notification: n, remaining: ttl})
	if len(c.toasts) > c.max {
		c.toasts = c.toasts[len(c.toasts)-c.max:]
	}
}

// Tick decrements the remaining TTL on all toasts by d and removes
// any that have expired.
func (c *ToastController) Tick(d time.Duration) {
	alive := c.toasts[:0]
	for _, t := range c.toasts {
		t.remaining -= d
		if t.remaining > 0 {
			alive = append(alive, t)
		}
	}
	c.toasts = alive
}

// Dismiss removes the newest (bottom-most) toast.
func (c *ToastController) Dismiss() {
	if len(c.toasts) > 0 {
		c.toasts = c.toasts[:len(c.toasts)-1]
	}
}

// HasToasts returns true if there are any active toasts.
func (c *ToastController) HasToasts() bool {
	return len(c.toasts) > 0
}

// Toasts returns the active toasts, oldest first.
func (c *ToastController) Toasts() []toast {
	return c.toasts
}
