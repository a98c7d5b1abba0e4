package adapter

import "context"

// MockCall records a single Complete invocation.
type MockCall struct {
	Model        string
	SystemPrompt string
	UserPrompt   string
}

// MockAdapter returns deterministic responses for local runs and tests.
type MockAdapter struct {
	responses       map[string]string
	defaultResponse string

	// Err, when set, is returned from every Complete call.
	Err error

	// Calls records every Complete invocation in order.
	Calls []MockCall
}

// NewMockAdapter creates a mock adapter with a default response.
func NewMockAdapter() *MockAdapter {
	return &MockAdapter{
		responses:       make(map[string]string),
		defaultResponse: "mock response:",
	}
}

// NewMockAdapterWithResponses creates a mock adapter with responses keyed
// by user prompt.
func NewMockAdapterWithResponses(responses map[string]string, defaultResponse string) *MockAdapter {
	if defaultResponse == "" {
		defaultResponse = "mock response:"
	}
	return &MockAdapter{responses: responses, defaultResponse: defaultResponse}
}

// Name returns the adapter identifier.
func (a *MockAdapter) Name() string {
	return "mock"
}

// Models returns the list of supported mock models.
func (a *MockAdapter) Models() []string {
	return []string{"mock-1"}
}

// Complete returns a deterministic response for the prompt pair.
func (a *MockAdapter) Complete(_ context.Context, model, systemPrompt, userPrompt string) (string, error) {
	if model == "" {
		model = "mock-1"
	}
	a.Calls = append(a.Calls, MockCall{Model: model, SystemPrompt: systemPrompt, UserPrompt: userPrompt})

	if a.Err != nil {
		return "", a.Err
	}
	if response, ok := a.responses[userPrompt]; ok {
		return response, nil
	}
	return a.defaultResponse, nil
}
