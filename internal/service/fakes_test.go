package service

import (
	"context"
	"sync"
	"testing"

	"agrisense-be/internal/pkg/logger"
	"agrisense-be/internal/pkg/testdb"
	"agrisense-be/internal/repository/unitofwork"
	"agrisense-be/pkg/events"
	"agrisense-be/pkg/llm"
)

type llmCall struct {
	Messages []llm.Message
	Options  llm.Options
	CtxErr   error
}

type fakeLLM struct {
	mu     sync.Mutex
	answer string
	err    error
	calls  []llmCall
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := append([]llm.Message(nil), history...)
	f.calls = append(f.calls, llmCall{
		Messages: copied,
		Options:  llm.ApplyOptions(llm.Options{}, opts...),
		CtxErr:   ctx.Err(),
	})
	return f.answer, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

func (f *fakeLLM) Calls() []llmCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]llmCall(nil), f.calls...)
}

func (f *fakeLLM) LastCall() llmCall {
	calls := f.Calls()
	return calls[len(calls)-1]
}

type fakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
	err      error
}

func (f *fakePublisher) Publish(_ context.Context, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, payload)
	return f.err
}

func (f *fakePublisher) Payloads() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]byte(nil), f.payloads...)
}

type recordingEvents struct {
	ch chan events.Event
}

func newRecordingEvents() *recordingEvents {
	return &recordingEvents{ch: make(chan events.Event, 16)}
}

func (r *recordingEvents) Publish(_ context.Context, evt events.Event) error {
	r.ch <- evt
	return nil
}

type fakeEmbedder struct {
	dims int
	err  error
}

func (f *fakeEmbedder) Embed(_ context.Context, text string, _ string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	vec := make([]float32, f.dims)
	if f.dims > 0 {
		vec[0] = float32(len(text))
	}
	return vec, nil
}

func newFactory(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()
	return unitofwork.NewRepositoryFactory(testdb.New(t))
}

func nopLogger() logger.ILogger {
	return logger.NewNopLogger()
}
