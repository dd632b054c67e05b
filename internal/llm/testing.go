package llm

import (
	"context"
	"sync"
)

// Fake is a scripted Completer for tests. Responses are returned in order;
// once exhausted, the last response repeats. A nil Err and empty Responses
// yield "".
//
// Fake records every prompt it receives for assertion.
type Fake struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	calls     int
	prompts   []string
}

// Complete implements Completer.
func (f *Fake) Complete(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.prompts = append(f.prompts, prompt)
	f.calls++

	if f.Err != nil {
		return "", f.Err
	}
	if len(f.Responses) == 0 {
		return "", nil
	}
	idx := f.calls - 1
	if idx >= len(f.Responses) {
		idx = len(f.Responses) - 1
	}
	return f.Responses[idx], nil
}

// Calls returns how many completions were requested.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// Prompts returns a copy of all received prompts.
func (f *Fake) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.prompts))
	copy(out, f.prompts)
	return out
}
