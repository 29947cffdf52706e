// Package notify sends desktop notifications for finished runs and dumps.
package notify

import (
	"fmt"
	"log"
	"strings"
	"time"

	"clipdeck/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	EventRunSucceeded Event = "run_succeeded"
	EventRunFailed    Event = "run_failed"
	EventImageDumped  Event = "image_dumped"
	EventCopied       Event = "copied"
)

type Preferences struct {
	AppName   string
	Title     string
	Timeout   time.Duration
	Templates map[Event]string
}

func DefaultPreferences() Preferences {
	return Preferences{
		AppName: "clipdeck",
		Title:   "clipaste",
		Timeout: platform.DefaultTimeout,
		Templates: map[Event]string{
			EventRunSucceeded: "Done: %s",
			EventRunFailed:    "Failed: %s",
			EventImageDumped:  "Saved clipboard image to %s",
			EventCopied:       "Copied %s",
		},
	}
}

// Notifier never blocks its caller on errors; failures are logged.
type Notifier struct {
	prefs   Preferences
	enabled bool
	send    func(appName, title, body string, opts platform.Options) error
}

func New(prefs Preferences, enabled bool) *Notifier {
	cloned := prefs
	cloned.Templates = make(map[Event]string, len(prefs.Templates))
	for k, v := range prefs.Templates {
		cloned.Templates[k] = v
	}
	return &Notifier{prefs: cloned, enabled: enabled, send: platform.Notify}
}

func (n *Notifier) RunSucceeded(summary string) {
	if strings.TrimSpace(summary) == "" {
		summary = "command finished"
	}
	n.dispatch(EventRunSucceeded, summary, platform.Options{})
}

func (n *Notifier) RunFailed(message string) {
	line, _, _ := strings.Cut(strings.TrimSpace(message), "\n")
	n.dispatch(EventRunFailed, line, platform.Options{Urgent: true})
}

// ImageDumped uses the saved image as the notification icon.
func (n *Notifier) ImageDumped(path string) {
	n.dispatch(EventImageDumped, path, platform.Options{IconPath: path})
}

func (n *Notifier) Copied(what string) {
	n.dispatch(EventCopied, what, platform.Options{})
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	if n == nil || !n.enabled || n.send == nil {
		return
	}
	template := strings.TrimSpace(n.prefs.Templates[event])
	if template == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(template, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	if opts.Timeout == 0 {
		opts.Timeout = n.prefs.Timeout
	}
	appName := n.prefs.AppName
	if appName == "" {
		appName = "clipdeck"
	}
	if err := n.send(appName, n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}
