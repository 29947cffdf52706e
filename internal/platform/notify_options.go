package platform

import "time"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath points to an image the notification center may show.
	IconPath string
	// Timeout is how long the notice stays up; zero uses DefaultTimeout.
	Timeout time.Duration
	// Urgent marks failures so the desktop can keep them visible.
	Urgent bool
}

const DefaultTimeout = 5 * time.Second

// expireMillis is the freedesktop expire_timeout value.
func (o Options) expireMillis() int32 {
	if o.Timeout <= 0 {
		return int32(DefaultTimeout / time.Millisecond)
	}
	return int32(o.Timeout / time.Millisecond)
}

// urgency follows the freedesktop levels: 1 normal, 2 critical.
func (o Options) urgency() byte {
	if o.Urgent {
		return 2
	}
	return 1
}
