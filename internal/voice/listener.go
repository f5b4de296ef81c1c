// Package voice abstracts the voice-input collaborator to a generic
// producer of recognized text. The sessions never see audio: whatever
// recognition engine runs outside the process delivers plain text lines,
// and those lines go through the same command interpreter as typed input.
package voice

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"sync"
)

// Listener is a stream of recognized text fragments. Start begins
// delivery, Stop tears the stream down; after Stop both channels are
// closed. Engine errors arrive on Errs and never stop the game: the
// caller surfaces them as notices and keeps playing on typed input.
type Listener interface {
	Start() error
	Stop()
	Lines() <-chan string
	Errs() <-chan error
}

// LineListener reads newline-delimited recognized text from an io.Reader,
// typically stdin or a FIFO fed by a recognizer process.
type LineListener struct {
	r     io.Reader
	lines chan string
	errs  chan error

	mu      sync.Mutex
	started bool
	stopped bool
	done    chan struct{}
}

// NewLineListener wraps r. Nothing is read until Start.
func NewLineListener(r io.Reader) *LineListener {
	return &LineListener{
		r:     r,
		lines: make(chan string, 16),
		errs:  make(chan error, 1),
		done:  make(chan struct{}),
	}
}

// Start begins reading lines on a background goroutine.
func (l *LineListener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return errors.New("voice: listener already stopped")
	}
	if l.started {
		return errors.New("voice: listener already started")
	}
	l.started = true

	go l.run()
	return nil
}

func (l *LineListener) run() {
	defer close(l.lines)
	defer close(l.errs)

	scanner := bufio.NewScanner(l.r)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		select {
		case l.lines <- text:
		case <-l.done:
			return
		}
	}
	if err := scanner.Err(); err != nil {
		select {
		case l.errs <- err:
		case <-l.done:
		}
	}
}

// Stop terminates delivery. Safe to call more than once.
func (l *LineListener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return
	}
	l.stopped = true
	close(l.done)
}

// Lines returns the recognized-text channel.
func (l *LineListener) Lines() <-chan string { return l.lines }

// Errs returns the engine-error channel.
func (l *LineListener) Errs() <-chan error { return l.errs }

var _ Listener = (*LineListener)(nil)
