package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go2opsin/go2opsin/internal/opsin"
)

// CallRecord records a single Invoke call.
type CallRecord struct {
	Program   string
	Args      []string
	Input     string // content of the staged input file, if one was passed
	Timestamp time.Time
}

type mockResponse struct {
	inv   *opsin.Invocation
	err   error
	delay time.Duration
}

// MockInvokerBuilder provides a fluent API for configuring canned OPSIN runs.
type MockInvokerBuilder struct {
	responses    []mockResponse
	byFirstArg   map[string]mockResponse
	currentIndex int
	calls        []CallRecord
	mu           sync.Mutex
}

// NewMockInvokerBuilder creates a builder with no queued responses.
func NewMockInvokerBuilder() *MockInvokerBuilder {
	return &MockInvokerBuilder{byFirstArg: map[string]mockResponse{}}
}

// WithOutput queues a clean run printing stdout.
func (b *MockInvokerBuilder) WithOutput(stdout string) *MockInvokerBuilder {
	return b.WithInvocation(&opsin.Invocation{Stdout: []byte(stdout)})
}

// WithInvocation queues an arbitrary finished run.
func (b *MockInvokerBuilder) WithInvocation(inv *opsin.Invocation) *MockInvokerBuilder {
	b.responses = append(b.responses, mockResponse{inv: inv})
	return b
}

// WithError queues a run that could not start.
func (b *MockInvokerBuilder) WithError(err error) *MockInvokerBuilder {
	b.responses = append(b.responses, mockResponse{err: err})
	return b
}

// WithDelay delays the most recently queued response. The delay is cut short
// when the context is cancelled.
func (b *MockInvokerBuilder) WithDelay(d time.Duration) *MockInvokerBuilder {
	if len(b.responses) > 0 {
		b.responses[len(b.responses)-1].delay = d
	}
	return b
}

// OnFirstArg answers every call whose first argument is arg (for example
// "-version" or "-jar") with inv, ahead of the queue.
func (b *MockInvokerBuilder) OnFirstArg(arg string, inv *opsin.Invocation) *MockInvokerBuilder {
	b.byFirstArg[arg] = mockResponse{inv: inv}
	return b
}

// Build returns the configured MockInvoker.
func (b *MockInvokerBuilder) Build() *MockInvoker {
	return &MockInvoker{builder: b}
}

// MockInvoker implements opsin.Invoker without starting processes.
type MockInvoker struct {
	builder *MockInvokerBuilder
}

// Invoke records the call and returns the next matching response. With
// nothing configured it reports a clean run with empty output.
func (m *MockInvoker) Invoke(ctx context.Context, program string, args []string) (*opsin.Invocation, error) {
	resp := m.record(program, args)

	if resp.delay > 0 {
		select {
		case <-time.After(resp.delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("running %s: %w", program, ctx.Err())
		}
	}
	if resp.err != nil {
		return nil, resp.err
	}
	if resp.inv == nil {
		return &opsin.Invocation{}, nil
	}
	return resp.inv, nil
}

func (m *MockInvoker) record(program string, args []string) mockResponse {
	b := m.builder
	b.mu.Lock()
	defer b.mu.Unlock()

	record := CallRecord{
		Program:   program,
		Args:      append([]string(nil), args...),
		Timestamp: time.Now(),
	}
	if n := len(args); n > 0 {
		if data, err := os.ReadFile(args[n-1]); err == nil {
			record.Input = string(data)
		}
	}
	b.calls = append(b.calls, record)

	if len(args) > 0 {
		if resp, ok := b.byFirstArg[args[0]]; ok {
			return resp
		}
	}
	if b.currentIndex < len(b.responses) {
		resp := b.responses[b.currentIndex]
		b.currentIndex++
		return resp
	}
	return mockResponse{}
}

// GetCalls returns all recorded calls.
func (m *MockInvoker) GetCalls() []CallRecord {
	m.builder.mu.Lock()
	defer m.builder.mu.Unlock()

	result := make([]CallRecord, len(m.builder.calls))
	copy(result, m.builder.calls)
	return result
}

// GetCallCount returns the number of calls made.
func (m *MockInvoker) GetCallCount() int {
	m.builder.mu.Lock()
	defer m.builder.mu.Unlock()
	return len(m.builder.calls)
}

// AssertCalledWith verifies that some call carried arg in its argument list.
func (m *MockInvoker) AssertCalledWith(t *testing.T, arg string) {
	t.Helper()

	calls := m.GetCalls()
	for _, call := range calls {
		for _, a := range call.Args {
			if a == arg {
				return
			}
		}
	}
	t.Errorf("expected a call with argument %q, none found in %d calls", arg, len(calls))
}

// AssertCallCount verifies the number of calls made.
func (m *MockInvoker) AssertCallCount(t *testing.T, expected int) {
	t.Helper()

	if got := m.GetCallCount(); got != expected {
		t.Errorf("expected %d calls, got %d", expected, got)
	}
}

// LastInputLines returns the staged names of the most recent call.
func (m *MockInvoker) LastInputLines() []string {
	calls := m.GetCalls()
	if len(calls) == 0 {
		return nil
	}
	input := strings.TrimSuffix(calls[len(calls)-1].Input, "\n")
	if input == "" {
		return nil
	}
	return strings.Split(input, "\n")
}

// Reset clears all recorded calls and rewinds the response queue.
func (m *MockInvoker) Reset() {
	m.builder.mu.Lock()
	defer m.builder.mu.Unlock()

	m.builder.calls = nil
	m.builder.currentIndex = 0
}
