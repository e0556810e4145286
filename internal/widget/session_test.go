package widget

import (
	"context"
	"errors"
	"testing"
)

type fakeRelay struct {
	reply string
	err   error
	calls int
	seen  []string
	// during runs inside Ask, while the turn is in flight
	during func()
}

func (f *fakeRelay) Ask(ctx context.Context, query string) (string, error) {
	f.calls++
	f.seen = append(f.seen, query)
	if f.during != nil {
		f.during()
	}
	return f.reply, f.err
}

func TestSubmit_EmptyInputIsIgnored(t *testing.T) {
	s := NewSession()
	relay := &fakeRelay{reply: "unused"}

	for _, input := range []string{"", "   ", "\n\t"} {
		if err := s.Submit(context.Background(), relay, input); !errors.Is(err, ErrEmptyInput) {
			t.Fatalf("expected ErrEmptyInput for %q, got %v", input, err)
		}
	}

	if relay.calls != 0 {
		t.Fatalf("expected no relay call, got %d", relay.calls)
	}
	if len(s.Transcript()) != 0 {
		t.Fatalf("expected empty transcript, got %v", s.Transcript())
	}
}

func TestSubmit_SuccessAppendsUserThenReply(t *testing.T) {
	s := NewSession()
	var rowsDuring []Entry
	var enabledDuring bool
	relay := &fakeRelay{reply: "We offer Web Development, SEO, ..."}
	relay.during = func() {
		rowsDuring = s.Rows()
		enabledDuring = s.SubmitEnabled()
	}

	if err := s.Submit(context.Background(), relay, "  What services do you offer?  "); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if relay.seen[0] != "What services do you offer?" {
		t.Fatalf("expected trimmed query, got %q", relay.seen[0])
	}

	if len(rowsDuring) != 2 || rowsDuring[0].Sender != SenderUser || rowsDuring[1].Sender != SenderTyping {
		t.Fatalf("expected user entry then typing placeholder while in flight, got %v", rowsDuring)
	}
	if enabledDuring {
		t.Fatal("submit control should be disabled while sending")
	}

	got := s.Transcript()
	want := []Entry{
		{Sender: SenderUser, Text: "What services do you offer?"},
		{Sender: SenderAI, Text: "We offer Web Development, SEO, ..."},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	if s.Typing() || s.IsSending() || !s.SubmitEnabled() {
		t.Fatal("expected session to be idle after the reply")
	}
	if rows := s.Rows(); len(rows) != 2 {
		t.Fatalf("typing placeholder should be gone, got %v", rows)
	}
}

func TestSubmit_FailureAppendsFallback(t *testing.T) {
	s := NewSession()
	relay := &fakeRelay{err: errors.New("relay server error: 500 Internal Server Error")}

	if err := s.Submit(context.Background(), relay, "hello"); err == nil {
		t.Fatal("expected relay error to be returned")
	}

	got := s.Transcript()
	if len(got) != 2 {
		t.Fatalf("expected exactly one user and one ai entry, got %v", got)
	}
	if got[1].Sender != SenderAI || got[1].Text != FallbackReply {
		t.Fatalf("expected fallback ai entry, got %v", got[1])
	}
	if s.IsSending() {
		t.Fatal("expected sending flag cleared after failure")
	}
}

func TestSubmit_SecondSubmitWhileSendingIsNoOp(t *testing.T) {
	s := NewSession()
	relay := &fakeRelay{reply: "first answer"}
	var innerErr error
	relay.during = func() {
		innerErr = s.Submit(context.Background(), relay, "second question")
	}

	if err := s.Submit(context.Background(), relay, "first question"); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if !errors.Is(innerErr, ErrBusy) {
		t.Fatalf("expected ErrBusy for overlapping submit, got %v", innerErr)
	}
	if relay.calls != 1 {
		t.Fatalf("expected one relay call, got %d", relay.calls)
	}
	if got := s.Transcript(); len(got) != 2 || got[0].Text != "first question" {
		t.Fatalf("overlapping submit must not touch the transcript, got %v", got)
	}
}

func TestFinish_WithoutPendingTurnDoesNothing(t *testing.T) {
	s := NewSession()
	s.Finish("stray", nil)
	if len(s.Transcript()) != 0 {
		t.Fatal("Finish without Begin should not append")
	}
}

func TestOnAppend_NotifiedForEveryEntry(t *testing.T) {
	s := NewSession()
	var seen []Sender
	s.OnAppend(func(e Entry) { seen = append(seen, e.Sender) })

	s.Submit(context.Background(), &fakeRelay{reply: "ok"}, "hi")

	if len(seen) != 2 || seen[0] != SenderUser || seen[1] != SenderAI {
		t.Fatalf("expected user then ai notifications, got %v", seen)
	}
}

func TestOpenCloseToggle(t *testing.T) {
	s := NewSession()
	if s.IsOpen() {
		t.Fatal("panel should start closed")
	}
	s.Open()
	if !s.IsOpen() {
		t.Fatal("expected open")
	}
	if s.Toggle() {
		t.Fatal("toggle should close an open panel")
	}
	s.Close()
	if s.IsOpen() {
		t.Fatal("expected closed")
	}
	if len(s.Transcript()) != 0 {
		t.Fatal("open/close must not touch the transcript")
	}
}
