package services

import (
	"context"
	"errors"
	"sync"

	"github.com/plainterms/plainterms-cli/internal/core/ports/driven"
)

// Ensure the mocks implement the interfaces.
var (
	_ driven.EmbeddingService = (*mockEmbedder)(nil)
	_ driven.LLMService       = (*mockLLM)(nil)
)

var errMockUnavailable = errors.New("mock service unavailable")

// mockEmbedder serves vectors from a fixed map, falling back to a
// deterministic length-derived vector, and records every call.
type mockEmbedder struct {
	mu         sync.Mutex
	vectors    map[string][]float32
	failTexts  map[string]bool
	failAll    bool
	model      string
	embedCalls int
	batchCalls int
}

func newMockEmbedder() *mockEmbedder {
	return &mockEmbedder{
		vectors:   make(map[string][]float32),
		failTexts: make(map[string]bool),
		model:     "mock-embed-v1",
	}
}

func (m *mockEmbedder) vectorFor(text string) []float32 {
	if v, ok := m.vectors[text]; ok {
		return append([]float32(nil), v...)
	}
	return []float32{float32(len(text)), 1, 0}
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.embedCalls++
	if m.failAll || m.failTexts[text] {
		return nil, errMockUnavailable
	}
	return m.vectorFor(text), nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batchCalls++
	if m.failAll {
		return nil, errMockUnavailable
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if m.failTexts[text] {
			return nil, errMockUnavailable
		}
		out[i] = m.vectorFor(text)
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int { return 3 }

func (m *mockEmbedder) ModelName() string { return m.model }

func (m *mockEmbedder) Ping(_ context.Context) error { return nil }

func (m *mockEmbedder) Close() error { return nil }

func (m *mockEmbedder) batches() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.batchCalls
}

// mockLLM returns a canned answer and records the prompts it saw.
type mockLLM struct {
	mu         sync.Mutex
	answer     string
	err        error
	calls      int
	lastSystem string
	lastUser   string
}

func (m *mockLLM) Generate(_ context.Context, systemPrompt, userPrompt string, _ int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastSystem = systemPrompt
	m.lastUser = userPrompt
	if m.err != nil {
		return "", m.err
	}
	return m.answer, nil
}

func (m *mockLLM) ModelName() string { return "mock-llm-v1" }

func (m *mockLLM) Ping(_ context.Context) error { return nil }

func (m *mockLLM) Close() error { return nil }
