// Package widget holds the chat panel state shared by every front-end: the
// open flag, the single in-flight guard and the transcript.
package widget

import (
	"context"
	"errors"
	"strings"
	"sync"
)

type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"

	// SenderTyping only ever appears in Rows, never in the transcript.
	SenderTyping Sender = "typing"
)

// FallbackReply is shown when the relay call fails for any reason.
const FallbackReply = "Sorry, I'm having trouble connecting. Please try again later."

// TypingText is the placeholder shown while a reply is pending.
const TypingText = "Pioneering AI is typing..."

var (
	ErrEmptyInput = errors.New("message is empty")
	ErrBusy       = errors.New("a message is already being sent")
)

type Entry struct {
	Sender Sender
	Text   string
}

// Relay answers one user message.
type Relay interface {
	Ask(ctx context.Context, query string) (string, error)
}

// Session is safe for concurrent use, though a UI normally drives it from a
// single goroutine.
type Session struct {
	mu         sync.Mutex
	open       bool
	sending    bool
	typing     bool
	transcript []Entry
	listeners  []func(Entry)
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) Open() {
	s.mu.Lock()
	s.open = true
	s.mu.Unlock()
}

func (s *Session) Close() {
	s.mu.Lock()
	s.open = false
	s.mu.Unlock()
}

func (s *Session) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = !s.open
	return s.open
}

func (s *Session) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

func (s *Session) IsSending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sending
}

// SubmitEnabled mirrors the disabled state of the submit control.
func (s *Session) SubmitEnabled() bool {
	return !s.IsSending()
}

// Typing reports whether the typing placeholder is showing.
func (s *Session) Typing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.typing
}

// Transcript returns a copy of the entries in arrival order.
func (s *Session) Transcript() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Rows is what a view renders: the transcript followed by the typing
// placeholder while a reply is pending.
func (s *Session) Rows() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.transcript), len(s.transcript)+1)
	copy(out, s.transcript)
	if s.typing {
		out = append(out, Entry{Sender: SenderTyping, Text: TypingText})
	}
	return out
}

// OnAppend registers fn to run after every appended entry, e.g. to scroll a
// view to the end. Listeners run without the session lock held.
func (s *Session) OnAppend(fn func(Entry)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Begin starts a turn: it appends the user entry, marks the session as
// sending and shows the typing placeholder. It returns the trimmed query to
// send.
func (s *Session) Begin(input string) (string, error) {
	query := strings.TrimSpace(input)
	if query == "" {
		return "", ErrEmptyInput
	}

	s.mu.Lock()
	if s.sending {
		s.mu.Unlock()
		return "", ErrBusy
	}
	entry := Entry{Sender: SenderUser, Text: query}
	s.transcript = append(s.transcript, entry)
	s.sending = true
	s.typing = true
	listeners := s.listeners
	s.mu.Unlock()

	notify(listeners, entry)
	return query, nil
}

// Finish ends the turn started by Begin. It removes the placeholder and
// appends exactly one ai entry. A call without a pending turn does nothing.
func (s *Session) Finish(reply string, err error) {
	text := reply
	if err != nil {
		text = FallbackReply
	}

	s.mu.Lock()
	if !s.sending {
		s.mu.Unlock()
		return
	}
	s.typing = false
	entry := Entry{Sender: SenderAI, Text: text}
	s.transcript = append(s.transcript, entry)
	s.sending = false
	listeners := s.listeners
	s.mu.Unlock()

	notify(listeners, entry)
}

// Submit runs a whole turn synchronously against relay.
func (s *Session) Submit(ctx context.Context, relay Relay, input string) error {
	query, err := s.Begin(input)
	if err != nil {
		return err
	}
	reply, err := relay.Ask(ctx, query)
	s.Finish(reply, err)
	return err
}

func notify(listeners []func(Entry), e Entry) {
	for _, fn := range listeners {
		fn(e)
	}
}
