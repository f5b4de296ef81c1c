package core

import "sync"

// NoticeKind classifies a user-visible notification.
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
)

// String returns a human-readable name for the kind.
func (k NoticeKind) String() string {
	if k == NoticeSuccess {
		return "success"
	}
	return "error"
}

// Notice is a transient, non-fatal notification emitted by a session:
// "already guessed", "incorrect guess", "level up". Notices never abort
// the session; the presentation layer decides how long to show them.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// Feed is a minimal publish/subscribe channel for session notices.
// Sessions publish, the rendering layer subscribes; there is no
// back-reference from the feed into session state.
type Feed struct {
	mu   sync.Mutex
	subs []func(Notice)
}

// NewFeed returns an empty feed.
func NewFeed() *Feed {
	return &Feed{}
}

// Subscribe registers fn to receive every subsequent notice.
// Callbacks run synchronously on the publishing goroutine.
func (f *Feed) Subscribe(fn func(Notice)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, fn)
}

// Publish delivers a notice to all subscribers.
func (f *Feed) Publish(kind NoticeKind, message string) {
	f.mu.Lock()
	subs := make([]func(Notice), len(f.subs))
	copy(subs, f.subs)
	f.mu.Unlock()

	n := Notice{Kind: kind, Message: message}
	for _, fn := range subs {
		fn(n)
	}
}

// Success publishes a success notice.
func (f *Feed) Success(message string) {
	f.Publish(NoticeSuccess, message)
}

// Error publishes an error notice.
func (f *Feed) Error(message string) {
	f.Publish(NoticeError, message)
}
