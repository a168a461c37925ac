// ABOUTME: Tests for the TokenStream contract
// ABOUTME: Verifies ordering, normal close, abort, and terminal exactly-once
package llm

import (
	"errors"
	"testing"
)

func TestTokenStream_OrderPreserved(t *testing.T) {
	s := NewTokenStream()
	want := []string{"The", " answer", " is", " 42", "."}

	go func() {
		for _, tok := range want {
			s.Push(tok)
		}
		s.Close()
	}()

	var got []string
	for tok := range s.Tokens() {
		got = append(got, tok)
	}

	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, got[i], want[i])
		}
	}
	if s.Err() != nil {
		t.Errorf("Err() = %v, want nil after normal close", s.Err())
	}
}

func TestTokenStream_Abort(t *testing.T) {
	s := NewTokenStream()
	cause := errors.New("model unavailable")

	go func() {
		s.Push("partial")
		s.Abort(cause)
	}()

	var got []string
	for tok := range s.Tokens() {
		got = append(got, tok)
	}

	if len(got) != 1 || got[0] != "partial" {
		t.Errorf("tokens before abort = %v, want [partial]", got)
	}
	if !errors.Is(s.Err(), cause) {
		t.Errorf("Err() = %v, want %v", s.Err(), cause)
	}
}

func TestTokenStream_TerminalExactlyOnce(t *testing.T) {
	s := NewTokenStream()

	s.Close()
	// Later terminals must be no-ops, not panics, and must not
	// overwrite the first terminal's outcome
	s.Abort(errors.New("too late"))
	s.Close()

	if _, open := <-s.Tokens(); open {
		t.Error("Tokens() channel should be closed")
	}
	if s.Err() != nil {
		t.Errorf("Err() = %v, want nil (close won the terminal)", s.Err())
	}
}

func TestTokenStream_AbortThenClose(t *testing.T) {
	s := NewTokenStream()
	cause := errors.New("boom")

	s.Abort(cause)
	s.Close()

	if !errors.Is(s.Err(), cause) {
		t.Errorf("Err() = %v, want %v (abort won the terminal)", s.Err(), cause)
	}
}
