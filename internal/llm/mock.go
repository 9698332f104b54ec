package llm

import "context"

// MockGenerator permite tests sin llamar a un LLM real.
type MockGenerator struct {
	Response string
	Err      error
	Calls    int
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.Calls++
	return m.Response, m.Err
}
