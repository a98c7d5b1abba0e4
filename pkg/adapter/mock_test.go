package adapter

import (
	"context"
	"errors"
	"testing"
)

func TestMockAdapterScriptedResponses(t *testing.T) {
	mock := NewMockAdapterWithResponses(map[string]string{
		"known prompt": `{"result": "ok"}`,
	}, "fallback")

	got, err := mock.Complete(context.Background(), "mock-1", "system", "known prompt")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got != `{"result": "ok"}` {
		t.Errorf("scripted response = %q", got)
	}

	got, err = mock.Complete(context.Background(), "mock-1", "system", "other prompt")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got != "fallback" {
		t.Errorf("default response = %q", got)
	}
}

func TestMockAdapterRecordsCalls(t *testing.T) {
	mock := NewMockAdapter()

	if _, err := mock.Complete(context.Background(), "", "sys", "user"); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("expected 1 recorded call, got %d", len(mock.Calls))
	}
	call := mock.Calls[0]
	if call.Model != "mock-1" || call.SystemPrompt != "sys" || call.UserPrompt != "user" {
		t.Errorf("recorded call = %+v", call)
	}
}

func TestMockAdapterError(t *testing.T) {
	mock := NewMockAdapter()
	mock.Err = errors.New("upstream unavailable")

	if _, err := mock.Complete(context.Background(), "mock-1", "sys", "user"); err == nil {
		t.Fatalf("expected error")
	}
	if len(mock.Calls) != 1 {
		t.Errorf("error calls should still be recorded, got %d", len(mock.Calls))
	}
}
