// ABOUTME: TokenStream carries streamed completion tokens to a consumer
// ABOUTME: Producer pushes, consumer pulls; exactly-once Closed/Aborted terminal
package llm

import "sync"

// TokenStream delivers completion tokens in generation order. The
// producer calls Push for each token and finishes with exactly one of
// Close or Abort; the channel returned by Tokens closes on either.
// After it closes, Err reports the abort cause (nil for a normal
// close). Push blocks when the consumer lags, which keeps delivery
// strictly ordered with bounded buffering.
type TokenStream struct {
	tokens chan string

	mu         sync.Mutex
	err        error
	terminated bool
}

// NewTokenStream creates a stream in its initial idle state.
func NewTokenStream() *TokenStream {
	return &TokenStream{tokens: make(chan string, 16)}
}

// Tokens returns the channel tokens arrive on.
func (s *TokenStream) Tokens() <-chan string {
	return s.tokens
}

// Err returns the abort cause. Only meaningful after Tokens closes.
func (s *TokenStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Push delivers one token. Must not be called after Close or Abort.
func (s *TokenStream) Push(token string) {
	s.tokens <- token
}

// Close terminates the stream normally. No-op after any terminal.
func (s *TokenStream) Close() {
	s.terminate(nil)
}

// Abort terminates the stream with an error. No-op after any terminal.
func (s *TokenStream) Abort(err error) {
	s.terminate(err)
}

func (s *TokenStream) terminate(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.terminated {
		return
	}
	s.terminated = true
	s.err = err
	close(s.tokens)
}
