package services

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeRunner struct {
	calls  int
	answer string
	err    error
	prompt string
}

func (f *fakeRunner) Run(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	return f.answer, f.err
}

func TestSummarizeEmptyDocumentsSkipsLLM(t *testing.T) {
	runner := &fakeRunner{answer: "should never be seen"}
	summarizer := NewSummarizer(runner)

	tests := []struct {
		question string
		expected string
	}{
		{"hotels in Paris", "No hotels found for this location."},
		{"flights from Boston to Miami", "No flights found for this route."},
	}

	for _, tt := range tests {
		got := summarizer.Summarize(context.Background(), ParseQuery(tt.question), nil)
		if got != tt.expected {
			t.Errorf("Summarize(%q, empty) = %q, want %q", tt.question, got, tt.expected)
		}
	}

	if runner.calls != 0 {
		t.Errorf("LLM invoked %d times with empty context, want 0", runner.calls)
	}
}

func TestSummarizeBuildsGroundingPrompt(t *testing.T) {
	runner := &fakeRunner{answer: "  The Hotel Lux looks best.\n"}
	summarizer := NewSummarizer(runner)

	docs := []string{
		"Hotel Lux in Paris costs $120 per night with rating 8.4.",
		"Hotel Rive in Paris costs $95 per night with rating 7.9.",
	}
	answer := summarizer.Summarize(context.Background(), ParseQuery("hotels in Paris"), docs)

	if answer != "The Hotel Lux looks best." {
		t.Errorf("answer = %q, want trimmed runner output", answer)
	}
	if runner.calls != 1 {
		t.Fatalf("LLM invoked %d times, want 1", runner.calls)
	}

	expected := "Using the following travel data, answer the question briefly:\n\n" +
		docs[0] + "\n" + docs[1] +
		"\n\nQuestion: hotels in Paris\nAnswer:"
	if runner.prompt != expected {
		t.Errorf("prompt = %q, want %q", runner.prompt, expected)
	}
}

func TestSummarizePreservesDocumentOrder(t *testing.T) {
	runner := &fakeRunner{answer: "ok"}
	summarizer := NewSummarizer(runner)

	docs := []string{"first document", "second document", "third document"}
	summarizer.Summarize(context.Background(), ParseQuery("hotels in Paris"), docs)

	first := strings.Index(runner.prompt, "first document")
	second := strings.Index(runner.prompt, "second document")
	third := strings.Index(runner.prompt, "third document")
	if !(first < second && second < third) {
		t.Errorf("documents reordered in prompt: %d %d %d", first, second, third)
	}
}

func TestSummarizeLLMFailureReturnsFallback(t *testing.T) {
	runner := &fakeRunner{err: errors.New("exit status 1")}
	summarizer := NewSummarizer(runner)

	got := summarizer.Summarize(context.Background(), ParseQuery("hotels in Paris"), []string{"doc"})
	if got != LLMFailureMessage {
		t.Errorf("Summarize() = %q, want %q", got, LLMFailureMessage)
	}
}
